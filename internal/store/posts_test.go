package store_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndaedxo/Social-Media-Platform/internal/store"
	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
)

func newPostsStore(t *testing.T) (*store.PostsStore, *substrate.Memory) {
	t.Helper()
	sub := substrate.NewMemory()
	return store.NewPostsStore(context.Background(), sub), sub
}

func TestCreatePost(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "alice-id", Content: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "hello", post.Content)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
	assert.Greater(t, post.Timestamp, int64(0))

	posts := s.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestCreatePostPrepends(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	first, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "first"})
	require.NoError(t, err)
	second, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "second"})
	require.NoError(t, err)

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestCreatePostRejectsBlankContent(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	_, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "seed"})
	require.NoError(t, err)
	before := s.Posts()

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: content})
		var verr *store.ValidationError
		require.ErrorAs(t, err, &verr)
	}

	after := s.Posts()
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].ID, after[0].ID)
}

func TestCreatePostRequiresAuthor(t *testing.T) {
	s, _ := newPostsStore(t)

	_, err := s.CreatePost(context.Background(), store.CreatePostParams{Content: "hello"})
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, s.Posts())
}

func TestCreatePostHasNoLengthCap(t *testing.T) {
	s, _ := newPostsStore(t)

	// 281 characters: one past the display limit, which is not a store rule
	long := strings.Repeat("x", 281)
	post, err := s.CreatePost(context.Background(), store.CreatePostParams{UserID: "u1", Content: long})
	require.NoError(t, err)
	assert.Len(t, post.Content, 281)
}

func TestToggleLikeInvolution(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "alice-id", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleLike(ctx, post.ID, "bob-id"))
	got, _ := s.PostByID(post.ID)
	assert.Equal(t, []string{"bob-id"}, got.Likes)

	require.NoError(t, s.ToggleLike(ctx, post.ID, "bob-id"))
	got, _ = s.PostByID(post.ID)
	assert.Empty(t, got.Likes)
}

func TestToggleLikeByAuthor(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "alice-id", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleLike(ctx, post.ID, "alice-id"))
	got, _ := s.PostByID(post.ID)
	assert.Equal(t, []string{"alice-id"}, got.Likes)
}

func TestToggleLikeUnknownPostIsNoop(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, s.ToggleLike(ctx, "no-such-post", "bob-id"))
	got, _ := s.PostByID(post.ID)
	assert.Empty(t, got.Likes)
}

func TestToggleLikeRequiresIDs(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	var verr *store.ValidationError
	require.ErrorAs(t, s.ToggleLike(ctx, "", "u1"), &verr)
	require.ErrorAs(t, s.ToggleLike(ctx, "p1", ""), &verr)
}

func TestAddCommentAppends(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "alice-id", Content: "hello"})
	require.NoError(t, err)

	first, err := s.AddComment(ctx, post.ID, "bob-id", "nice")
	require.NoError(t, err)
	second, err := s.AddComment(ctx, post.ID, "carol-id", "agreed")
	require.NoError(t, err)

	got, _ := s.PostByID(post.ID)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, first.ID, got.Comments[0].ID)
	assert.Equal(t, second.ID, got.Comments[1].ID)
	assert.Equal(t, "nice", got.Comments[0].Content)
}

func TestAddCommentValidation(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "hello"})
	require.NoError(t, err)

	var verr *store.ValidationError
	_, err = s.AddComment(ctx, post.ID, "bob-id", "   ")
	require.ErrorAs(t, err, &verr)
	_, err = s.AddComment(ctx, post.ID, "", "hi")
	require.ErrorAs(t, err, &verr)
	_, err = s.AddComment(ctx, "", "bob-id", "hi")
	require.ErrorAs(t, err, &verr)

	got, _ := s.PostByID(post.ID)
	assert.Empty(t, got.Comments)
}

func TestAddCommentUnknownPostIsNoop(t *testing.T) {
	s, _ := newPostsStore(t)

	_, err := s.AddComment(context.Background(), "no-such-post", "bob-id", "hi")
	require.NoError(t, err)
	assert.Empty(t, s.Posts())
}

func TestPostsPersistenceFailureIsOptimistic(t *testing.T) {
	sub := &flakySubstrate{Memory: substrate.NewMemory(), failSet: true}
	ctx := context.Background()
	s := store.NewPostsStore(ctx, sub)

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "hello"})
	var perr *store.PersistenceError
	require.ErrorAs(t, err, &perr)

	// in-memory collection advanced, durable copy did not
	require.Len(t, s.Posts(), 1)
	assert.Equal(t, post.ID, s.Posts()[0].ID)
	assert.NotEmpty(t, s.Err())
	_, err = sub.Memory.Get(ctx, substrate.KeyPosts)
	assert.ErrorIs(t, err, substrate.ErrNotFound)
}

func TestPostsReload(t *testing.T) {
	sub := substrate.NewMemory()
	ctx := context.Background()
	s := store.NewPostsStore(ctx, sub)

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "hello", ImageURL: "img://1"})
	require.NoError(t, err)
	_, err = s.AddComment(ctx, post.ID, "u2", "hi")
	require.NoError(t, err)

	reloaded := store.NewPostsStore(ctx, sub)
	got, ok := reloaded.PostByID(post.ID)
	require.True(t, ok)
	assert.Equal(t, "img://1", got.ImageURL)
	require.Len(t, got.Comments, 1)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s, _ := newPostsStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: "hello"})
	require.NoError(t, err)

	old := s.Posts()
	require.NoError(t, s.ToggleLike(ctx, post.ID, "u2"))

	// the snapshot taken before the like still shows zero likes
	assert.Empty(t, old[0].Likes)
	got, _ := s.PostByID(post.ID)
	assert.Len(t, got.Likes, 1)
}

func BenchmarkToggleLike(b *testing.B) {
	sub := substrate.NewMemory()
	ctx := context.Background()
	s := store.NewPostsStore(ctx, sub)

	ids := make([]string, 200)
	for i := range ids {
		p, err := s.CreatePost(ctx, store.CreatePostParams{UserID: "u1", Content: fmt.Sprintf("post %d", i)})
		if err != nil {
			b.Fatalf("seed posts: %v", err)
		}
		ids[i] = p.ID
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.ToggleLike(ctx, ids[i%len(ids)], "u2")
	}
}
