package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog-api/internal/domain"
)

type mongoPost struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"userId"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	Image     string        `bson:"image"`
	Category  string        `bson:"category"`
	Slug      string        `bson:"slug"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d mongoPost) toDomain() domain.Post {
	return domain.Post{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		Image:     d.Image,
		Category:  d.Category,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoPostRepository implementa PostRepository sobre la coleccion posts.
type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(PostsCollection)}
}

func (r *MongoPostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	now := time.Now().UTC()
	doc := mongoPost{
		ID:        bson.NewObjectID(),
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		Image:     post.Image,
		Category:  post.Category,
		Slug:      post.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Post{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	var doc mongoPost
	if err := r.coll.FindOne(ctx, objectIDFilter(id)).Decode(&doc); err != nil {
		return domain.Post{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoPostRepository) Update(ctx context.Context, id string, upd domain.PostUpdate) (domain.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, value := range map[string]*string{
		"title":    upd.Title,
		"content":  upd.Content,
		"category": upd.Category,
		"image":    upd.Image,
		"slug":     upd.Slug,
	} {
		if value != nil {
			set[field] = *value
		}
	}

	var doc mongoPost
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, objectIDFilter(id), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return domain.Post{}, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, objectIDFilter(id))
	if err != nil {
		return mapMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) List(ctx context.Context, filter domain.PostFilter, page domain.Page) ([]domain.Post, error) {
	cur, err := r.coll.Find(ctx, mongoPostFilter(filter), pageOptions(page, "updatedAt"))
	if err != nil {
		return nil, err
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *MongoPostRepository) Count(ctx context.Context, filter domain.PostFilter, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, sinceFilter(mongoPostFilter(filter), since))
}

// mongoPostFilter traduce PostFilter a un filtro de mongo. searchTerm se
// busca literal y sin distinguir mayusculas en title y content.
func mongoPostFilter(f domain.PostFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Slug != "" {
		filter["slug"] = f.Slug
	}
	if f.PostID != "" {
		filter["_id"] = objectIDFilter(f.PostID)["_id"]
	}
	if f.SearchTerm != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(f.SearchTerm), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}
	return filter
}
