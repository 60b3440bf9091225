package usecase_post

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
)

type fakeRepository struct {
	posts []*model.Post
	byID  map[string]*model.Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*model.Post)}
}

func (f *fakeRepository) Insert(_ context.Context, post *model.Post) error {
	f.posts = append(f.posts, post)
	f.byID[post.ID] = post
	return nil
}

func (f *fakeRepository) Mutate(_ context.Context, id string, fn func(*model.Post) error) error {
	post, ok := f.byID[id]
	if !ok {
		return ErrResourceNotFound
	}
	return fn(post)
}

func (f *fakeRepository) ListNewest(_ context.Context, limit int) ([]model.Post, error) {
	if limit > len(f.posts) {
		limit = len(f.posts)
	}
	out := make([]model.Post, 0, limit)
	for i := len(f.posts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.posts[i].Clone())
	}
	return out, nil
}

func (f *fakeRepository) Count(_ context.Context) int {
	return len(f.posts)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		authorName  string
		text        string
		expectError error
		expectName  string
	}{
		{
			name:       "keeps author and text",
			authorName: "sensei",
			text:       "How to land the Dragon Strike",
			expectName: "sensei",
		},
		{
			name:       "defaults blank author to anonymous",
			authorName: "   ",
			text:       "untitled wisdom",
			expectName: "anonymous",
		},
		{
			name:        "rejects empty text",
			authorName:  "sensei",
			text:        "   ",
			expectError: ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usecase := New(newFakeRepository(), 24, 800, 100)

			post, err := usecase.Publish(ctx, tc.authorName, "", tc.text)

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, post.ID)
			assert.Equal(t, tc.expectName, post.AuthorName)
		})
	}
}

func TestPublishTruncatesText(t *testing.T) {
	usecase := New(newFakeRepository(), 24, 10, 100)

	post, err := usecase.Publish(context.Background(), "sensei", "", "a very long write-up body")

	require.NoError(t, err)
	assert.Len(t, []rune(post.Text), 10)
}

func TestListNewestFirstAndClamped(t *testing.T) {
	ctx := context.Background()
	usecase := New(newFakeRepository(), 24, 800, 3)

	for i := 0; i < 5; i++ {
		_, err := usecase.Publish(ctx, "sensei", "", fmt.Sprintf("post %d", i))
		require.NoError(t, err)
	}

	posts, err := usecase.List(ctx, 100)
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, "post 4", posts[0].Text)
	assert.Equal(t, "post 3", posts[1].Text)
	assert.Equal(t, "post 2", posts[2].Text)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	usecase := New(newFakeRepository(), 24, 800, 100)

	post, err := usecase.Publish(ctx, "sensei", "", "likeable")
	require.NoError(t, err)

	count, liked, err := usecase.ToggleLike(ctx, post.ID, "fan-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	count, liked, err = usecase.ToggleLike(ctx, post.ID, "fan-2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	count, liked, err = usecase.ToggleLike(ctx, post.ID, "fan-1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, count)
}

func TestToggleLikeFailures(t *testing.T) {
	ctx := context.Background()
	usecase := New(newFakeRepository(), 24, 800, 100)

	post, err := usecase.Publish(ctx, "sensei", "", "likeable")
	require.NoError(t, err)

	_, _, err = usecase.ToggleLike(ctx, post.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = usecase.ToggleLike(ctx, "missing", "fan-1")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
