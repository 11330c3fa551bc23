package service

import (
	"context"
	"errors"
	"time"

	"github.com/JosephKS10/blog-backend/internal/cache"
	"github.com/JosephKS10/blog-backend/internal/events"
	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/JosephKS10/blog-backend/internal/media"
	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/JosephKS10/blog-backend/internal/qrcode"
	"github.com/JosephKS10/blog-backend/internal/storage"
	"github.com/JosephKS10/blog-backend/internal/validation"
)

// PostInput carries decoded body fields plus an optional uploaded image.
type PostInput struct {
	Fields        validation.Values
	FeaturedImage *media.File
}

// ViewMeta describes the reader of a post for analytics.
type ViewMeta struct {
	IP        string
	UserAgent string
	Referer   string
}

type ViewPublisher interface {
	Publish(ctx context.Context, event *events.ViewEvent) error
}

type StatsSource interface {
	PostViewStats(ctx context.Context, postID string) (*models.PostStats, error)
}

// PostOptions wires the optional collaborators. Nil fields disable the
// feature they back.
type PostOptions struct {
	ImageFolder   string
	PublicBaseURL string
	Cache         *cache.PostCache
	Views         ViewPublisher
	Stats         StatsSource
}

type PostService struct {
	store    storage.PostStore
	uploader media.Uploader
	opts     PostOptions
	log      *logger.Logger
	now      func() time.Time
}

func NewPostService(store storage.PostStore, uploader media.Uploader, opts PostOptions, log *logger.Logger) *PostService {
	if opts.ImageFolder == "" {
		opts.ImageFolder = "post_images"
	}
	return &PostService{
		store:    store,
		uploader: uploader,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.store.ListPosts(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if s.opts.Cache != nil {
		if post, ok := s.opts.Cache.Get(ctx, id); ok {
			return post, nil
		}
	}

	var mark uint64
	if s.opts.Cache != nil {
		mark = s.opts.Cache.Mark()
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.opts.Cache != nil {
		s.opts.Cache.Fill(ctx, post, mark)
	}
	return post, nil
}

// Create stores a new post owned by authorID. Any AuthorID in the body is
// ignored.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	var errs validation.Errors
	if err := validation.CreatePostRules.Validate(in.Fields); err != nil {
		if !errors.As(err, &errs) {
			return nil, err
		}
	}

	_, hasURL := in.Fields.Lookup("featuredImageURL")
	if in.FeaturedImage == nil && !hasURL {
		errs = append(errs, validation.Field("featuredImage", "", "Featured image is required"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	post := &models.Post{PostDate: s.now().UTC()}
	if err := applyFields(post, in.Fields); err != nil {
		return nil, err
	}
	post.AuthorID = authorID

	if in.FeaturedImage != nil {
		url, err := s.uploader.Upload(ctx, s.opts.ImageFolder, *in.FeaturedImage)
		if err != nil {
			return nil, err
		}
		post.FeaturedImageURL = url
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info("Created post %s by %s", post.ID, authorID)
	return post, nil
}

// Update overwrites only the fields that were supplied, even when a
// supplied value is the zero value.
func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*models.Post, error) {
	if err := validation.UpdatePostRules.Validate(in.Fields); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyFields(post, in.Fields); err != nil {
		return nil, err
	}

	if in.FeaturedImage != nil {
		url, err := s.uploader.Upload(ctx, s.opts.ImageFolder, *in.FeaturedImage)
		if err != nil {
			return nil, err
		}
		post.FeaturedImageURL = url
	}

	s.invalidate(ctx, id)
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	s.invalidate(ctx, id)
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info("Deleted post %s", id)
	return nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return s.store.ListPostsByAuthor(ctx, authorID)
}

// RecordView publishes a view event. It is a no-op when no publisher is set.
func (s *PostService) RecordView(ctx context.Context, id string, meta ViewMeta) error {
	if s.opts.Views == nil {
		return nil
	}

	return s.opts.Views.Publish(ctx, &events.ViewEvent{
		PostID:    id,
		Timestamp: s.now().UnixMilli(),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Referer:   meta.Referer,
	})
}

func (s *PostService) Stats(ctx context.Context, id string) (*models.PostStats, error) {
	if s.opts.Stats == nil {
		return nil, ErrStatsUnavailable
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.opts.Stats.PostViewStats(ctx, id)
}

func (s *PostService) ShareURL(id string) string {
	return s.opts.PublicBaseURL + "/posts/" + id
}

// ShareQRCode renders a PNG QR code pointing at the post.
func (s *PostService) ShareQRCode(ctx context.Context, id string, size int) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return qrcode.PNG(s.ShareURL(id), size)
}

// ShareQRCodeDataURI is ShareQRCode encoded as a data: URI.
func (s *PostService) ShareQRCodeDataURI(ctx context.Context, id string, size int) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	return qrcode.DataURI(s.ShareURL(id), size)
}

// invalidate is called both before and after every store write.
func (s *PostService) invalidate(ctx context.Context, id string) {
	if s.opts.Cache != nil {
		s.opts.Cache.Invalidate(ctx, id)
	}
}

// applyFields copies every supplied field onto post. Fields are assumed
// to have passed a Ruleset already.
func applyFields(post *models.Post, fields validation.Values) error {
	strs := map[string]*string{
		"title":            &post.Title,
		"body":             &post.Body,
		"category":         &post.Category,
		"excerpt":          &post.Excerpt,
		"authorName":       &post.AuthorName,
		"authorImageURL":   &post.AuthorImageURL,
		"featuredImageURL": &post.FeaturedImageURL,
	}
	for field, dst := range strs {
		if v, ok := fields.String(field); ok {
			*dst = v
		}
	}

	if v, ok := fields.String("postDate"); ok {
		t, err := validation.ParseDate(v)
		if err != nil {
			return validation.Errors{validation.Field("postDate", v, "Post Date must be a valid date")}
		}
		post.PostDate = t
	}

	if v, ok := fields.String("readTime"); ok {
		n, err := validation.ParseNumber(v)
		if err != nil {
			return validation.Errors{validation.Field("readTime", v, "ReadTime must be a number")}
		}
		post.ReadTime = n
	}

	if v, ok := fields.Lookup("tags"); ok {
		post.Tags = validation.SplitTags(v)
	}

	return nil
}
