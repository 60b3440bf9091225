package storage_post

import (
	"context"
	"sync"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
	usecase_post "github.com/leiven89/BUJIN-YUGI/internal/usecase/post"
)

// Storage is the in-memory post feed. Append order doubles as
// chronology; ListNewest walks it backwards.
type Storage struct {
	mu    sync.Mutex
	posts []*model.Post
	byID  map[string]*model.Post
}

func New() *Storage {
	return &Storage{
		byID: make(map[string]*model.Post),
	}
}

func (s *Storage) Insert(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append(s.posts, post)
	s.byID[post.ID] = post
	return nil
}

func (s *Storage) Mutate(_ context.Context, id string, fn func(*model.Post) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.byID[id]
	if !ok {
		return usecase_post.ErrResourceNotFound
	}
	return fn(post)
}

func (s *Storage) ListNewest(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit > len(s.posts) {
		limit = len(s.posts)
	}

	out := make([]model.Post, 0, limit)
	for i := len(s.posts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.posts[i].Clone())
	}
	return out, nil
}

func (s *Storage) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}
