package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Email          string        `bson:"email"`
	Password       string        `bson:"password"`
	Name           string        `bson:"name"`
	Bio            string        `bson:"bio"`
	ProfilePicture string        `bson:"profilePicture,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt"`
}

type postDocument struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	Title            string        `bson:"Title"`
	Body             string        `bson:"Body"`
	Category         string        `bson:"Category"`
	PostDate         time.Time     `bson:"PostDate"`
	ReadTime         float64       `bson:"ReadTime"`
	Excerpt          string        `bson:"Excerpt"`
	Tags             []string      `bson:"Tags"`
	AuthorName       string        `bson:"AuthorName"`
	AuthorID         bson.ObjectID `bson:"AuthorID"`
	AuthorImageURL   string        `bson:"AuthorImageURL"`
	FeaturedImageURL string        `bson:"FeaturedImageURL"`
}

type commentDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	PostID         string        `bson:"postId"`
	UserName       string        `bson:"userName"`
	UserProfilePic string        `bson:"userProfilePic,omitempty"`
	Text           string        `bson:"text"`
	CreatedAt      time.Time     `bson:"createdAt"`
}

// MongoStorage is the default backend, keeping the users/posts/comments
// collection layout.
type MongoStorage struct {
	client   *mongodb.Client
	users    *mongo.Collection
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewMongoStorage(client *mongodb.Client) *MongoStorage {
	db := client.Database()
	return &MongoStorage{
		client:   client,
		users:    db.Collection(mongodb.UsersCollection),
		posts:    db.Collection(mongodb.PostsCollection),
		comments: db.Collection(mongodb.CommentsCollection),
	}
}

func (s *MongoStorage) ValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

func (s *MongoStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *MongoStorage) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	doc := userDocument{
		ID:             bson.NewObjectID(),
		Email:          user.Email,
		Password:       user.PasswordHash,
		Name:           user.Name,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

func (s *MongoStorage) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.User{
		ID:             doc.ID.Hex(),
		Email:          doc.Email,
		PasswordHash:   doc.Password,
		Name:           doc.Name,
		Bio:            doc.Bio,
		ProfilePicture: doc.ProfilePicture,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

func (s *MongoStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.findPosts(ctx, bson.M{})
}

func (s *MongoStorage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc postDocument
	err = s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoStorage) CreatePost(ctx context.Context, post *models.Post) error {
	doc, err := newPostDocument(post)
	if err != nil {
		return err
	}
	doc.ID = bson.NewObjectID()

	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	post.ID = doc.ID.Hex()
	normalizeTags(post)
	return nil
}

func (s *MongoStorage) UpdatePost(ctx context.Context, post *models.Post) error {
	oid, err := bson.ObjectIDFromHex(post.ID)
	if err != nil {
		return ErrNotFound
	}

	doc, err := newPostDocument(post)
	if err != nil {
		return err
	}
	doc.ID = oid

	res, err := s.posts.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	normalizeTags(post)
	return nil
}

func (s *MongoStorage) DeletePost(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStorage) ListPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	oid, err := bson.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.findPosts(ctx, bson.M{"AuthorID": oid})
}

func (s *MongoStorage) findPosts(ctx context.Context, filter bson.M) ([]*models.Post, error) {
	cursor, err := s.posts.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}

func (s *MongoStorage) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.comments.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	comments := make([]*models.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, &models.Comment{
			ID:             d.ID.Hex(),
			PostID:         d.PostID,
			UserName:       d.UserName,
			UserProfilePic: d.UserProfilePic,
			Text:           d.Text,
			CreatedAt:      d.CreatedAt,
		})
	}
	return comments, nil
}

func (s *MongoStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	doc := commentDocument{
		ID:             bson.NewObjectID(),
		PostID:         comment.PostID,
		UserName:       comment.UserName,
		UserProfilePic: comment.UserProfilePic,
		Text:           comment.Text,
		CreatedAt:      comment.CreatedAt,
	}

	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	comment.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStorage) DeleteOrphanedComments(ctx context.Context) (int64, error) {
	cursor, err := s.posts.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, fmt.Errorf("failed to list post ids: %w", err)
	}

	var ids []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &ids); err != nil {
		return 0, fmt.Errorf("failed to decode post ids: %w", err)
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		live = append(live, id.ID.Hex())
	}

	res, err := s.comments.DeleteMany(ctx, bson.M{"postId": bson.M{"$nin": live}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned comments: %w", err)
	}
	return res.DeletedCount, nil
}

func newPostDocument(p *models.Post) (postDocument, error) {
	authorID, err := bson.ObjectIDFromHex(p.AuthorID)
	if err != nil {
		return postDocument{}, fmt.Errorf("%w: author %q", ErrInvalidID, p.AuthorID)
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return postDocument{
		Title:            p.Title,
		Body:             p.Body,
		Category:         p.Category,
		PostDate:         p.PostDate,
		ReadTime:         p.ReadTime,
		Excerpt:          p.Excerpt,
		Tags:             tags,
		AuthorName:       p.AuthorName,
		AuthorID:         authorID,
		AuthorImageURL:   p.AuthorImageURL,
		FeaturedImageURL: p.FeaturedImageURL,
	}, nil
}

func (d *postDocument) toModel() *models.Post {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Post{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Body:             d.Body,
		Category:         d.Category,
		PostDate:         d.PostDate,
		ReadTime:         d.ReadTime,
		Excerpt:          d.Excerpt,
		Tags:             tags,
		AuthorName:       d.AuthorName,
		AuthorID:         d.AuthorID.Hex(),
		AuthorImageURL:   d.AuthorImageURL,
		FeaturedImageURL: d.FeaturedImageURL,
	}
}
