package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryStorage keeps everything in process. Used by tests and by
// STORE_DRIVER=memory for local runs.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	emails   map[string]string
	posts    map[string]*models.Post
	order    []string
	comments []*models.Comment
	now      func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:  make(map[string]*models.User),
		emails: make(map[string]string),
		posts:  make(map[string]*models.Post),
		now:    time.Now,
	}
}

func (s *MemoryStorage) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[user.Email]; exists {
		return ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}

	stored := *user
	s.users[user.ID] = &stored
	s.emails[user.Email] = user.ID
	return nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.emails[email]
	if !exists {
		return nil, ErrNotFound
	}
	user := *s.users[id]
	return &user, nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	user := *u
	return &user, nil
}

func (s *MemoryStorage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, clonePost(s.posts[id]))
	}
	return posts, nil
}

func (s *MemoryStorage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.posts[id]
	if !exists {
		return nil, ErrNotFound
	}
	return clonePost(p), nil
}

func (s *MemoryStorage) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = uuid.NewString()
	normalizeTags(post)

	s.posts[post.ID] = clonePost(post)
	s.order = append(s.order, post.ID)
	return nil
}

func (s *MemoryStorage) UpdatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; !exists {
		return ErrNotFound
	}
	normalizeTags(post)
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *MemoryStorage) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return ErrNotFound
	}
	delete(s.posts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStorage) ListPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	if !s.ValidID(authorID) {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0)
	for _, id := range s.order {
		if p := s.posts[id]; p.AuthorID == authorID {
			posts = append(posts, clonePost(p))
		}
	}
	return posts, nil
}

func (s *MemoryStorage) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]*models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemoryStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = uuid.NewString()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.now()
	}
	stored := *comment
	s.comments = append(s.comments, &stored)
	return nil
}

func (s *MemoryStorage) DeleteOrphanedComments(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.comments[:0]
	var removed int64
	for _, c := range s.comments {
		if _, exists := s.posts[c.PostID]; exists {
			kept = append(kept, c)
			continue
		}
		removed++
	}
	s.comments = kept
	return removed, nil
}

func clonePost(p *models.Post) *models.Post {
	copied := *p
	copied.Tags = append([]string{}, p.Tags...)
	return &copied
}
