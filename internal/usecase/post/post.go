package usecase_post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrValidation       = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

type PostRepository interface {
	Insert(ctx context.Context, post *model.Post) error
	Mutate(ctx context.Context, id string, fn func(*model.Post) error) error
	ListNewest(ctx context.Context, limit int) ([]model.Post, error)
	Count(ctx context.Context) int
}

type Usecase struct {
	repository PostRepository

	nameCap int
	textCap int
	listMax int
}

func New(repository PostRepository, nameCap, textCap, listMax int) *Usecase {
	if nameCap <= 0 {
		nameCap = 24 /* default */
	}
	if textCap <= 0 {
		textCap = 800 /* default */
	}
	if listMax <= 0 {
		listMax = 100 /* default */
	}

	return &Usecase{
		repository: repository,
		nameCap:    nameCap,
		textCap:    textCap,
		listMax:    listMax,
	}
}

func (u *Usecase) Publish(ctx context.Context, authorName, title, text string) (model.Post, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return model.Post{}, ErrValidation
	}

	author := strings.TrimSpace(authorName)
	if author == "" {
		author = "anonymous"
	}

	post := &model.Post{
		ID:         model.NewID(),
		AuthorName: truncate(author, u.nameCap),
		Title:      truncate(strings.TrimSpace(title), u.nameCap*4),
		Text:       truncate(body, u.textCap),
		CreatedAt:  time.Now(),
		LikedBy:    make(map[string]struct{}),
	}

	if err := u.repository.Insert(ctx, post); err != nil {
		return model.Post{}, errors.Join(ErrInternal, err)
	}
	return post.Clone(), nil
}

// List returns newest-first, capped by both the caller's limit and the
// configured page maximum.
func (u *Usecase) List(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 || limit > u.listMax {
		limit = u.listMax
	}

	posts, err := u.repository.ListNewest(ctx, limit)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return posts, nil
}

// ToggleLike flips the caller's like on the post.
func (u *Usecase) ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error) {
	if strings.TrimSpace(callerID) == "" {
		return 0, false, ErrValidation
	}

	var (
		likeCount int
		liked     bool
	)
	err := u.repository.Mutate(ctx, postID, func(post *model.Post) error {
		if post.LikedByCaller(callerID) {
			delete(post.LikedBy, callerID)
		} else {
			post.LikedBy[callerID] = struct{}{}
		}
		likeCount = post.LikeCount()
		liked = post.LikedByCaller(callerID)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return 0, false, ErrResourceNotFound
		}
		return 0, false, errors.Join(ErrInternal, err)
	}

	return likeCount, liked, nil
}

func (u *Usecase) Count(ctx context.Context) int {
	return u.repository.Count(ctx)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
