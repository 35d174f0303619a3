package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog-api/internal/domain"
)

type mongoComment struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Content       string        `bson:"content"`
	PostID        string        `bson:"postId"`
	UserID        string        `bson:"userId"`
	Likes         []string      `bson:"likes"`
	NumberOfLikes int           `bson:"numberOfLikes"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func (d mongoComment) toDomain() domain.Comment {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	return domain.Comment{
		ID:            d.ID.Hex(),
		Content:       d.Content,
		PostID:        d.PostID,
		UserID:        d.UserID,
		Likes:         likes,
		NumberOfLikes: d.NumberOfLikes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// MongoCommentRepository implementa CommentRepository sobre la coleccion comments.
type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(CommentsCollection)}
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	now := time.Now().UTC()
	likes := comment.Likes
	if likes == nil {
		likes = []string{}
	}
	doc := mongoComment{
		ID:            bson.NewObjectID(),
		Content:       comment.Content,
		PostID:        comment.PostID,
		UserID:        comment.UserID,
		Likes:         likes,
		NumberOfLikes: len(likes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Comment{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var doc mongoComment
	if err := r.coll.FindOne(ctx, objectIDFilter(id)).Decode(&doc); err != nil {
		return domain.Comment{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoCommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeComments(ctx, cur)
}

func (r *MongoCommentRepository) Save(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	likes := comment.Likes
	if likes == nil {
		likes = []string{}
	}
	update := bson.M{"$set": bson.M{
		"content":       comment.Content,
		"likes":         likes,
		"numberOfLikes": len(likes),
		"updatedAt":     time.Now().UTC(),
	}}

	var doc mongoComment
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, objectIDFilter(comment.ID), update, opts).Decode(&doc); err != nil {
		return domain.Comment{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, objectIDFilter(id))
	if err != nil {
		return mapMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCommentRepository) List(ctx context.Context, page domain.Page) ([]domain.Comment, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, pageOptions(page, "createdAt"))
	if err != nil {
		return nil, err
	}
	return decodeComments(ctx, cur)
}

func (r *MongoCommentRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, sinceFilter(bson.M{}, since))
}

func decodeComments(ctx context.Context, cur *mongo.Cursor) ([]domain.Comment, error) {
	var docs []mongoComment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.toDomain())
	}
	return comments, nil
}
