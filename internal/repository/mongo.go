package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog-api/internal/domain"
)

// Nombres de colecciones en la base de mongo.
const (
	UsersCollection    = "users"
	PostsCollection    = "posts"
	CommentsCollection = "comments"
)

// objectIDFilter arma un filtro por _id; un id que no es hex no matchea nada.
func objectIDFilter(id string) bson.M {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"_id": bson.M{"$in": bson.A{}}}
	}
	return bson.M{"_id": oid}
}

func mongoDirection(order domain.SortOrder) int {
	if order == domain.SortAsc {
		return 1
	}
	return -1
}

func pageOptions(page domain.Page, sortField string) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: mongoDirection(page.Order)}}).
		SetSkip(int64(page.StartIndex)).
		SetLimit(int64(page.Limit))
}

// sinceFilter agrega la condicion createdAt >= since cuando since no es cero.
func sinceFilter(filter bson.M, since time.Time) bson.M {
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	return filter
}
