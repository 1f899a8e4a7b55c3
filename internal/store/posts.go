package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ndaedxo/Social-Media-Platform/internal/model"
	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
)

// PostsStore owns the post collection, newest first, with nested likes and
// comments. Mutations rebuild the whole collection so that every published
// snapshot is a fresh value; observers holding an older snapshot keep a
// consistent view. Persistence follows the same optimistic discipline as the
// identity store.
type PostsStore struct {
	sub substrate.Substrate

	mu      sync.RWMutex
	posts   []model.Post
	lastErr string
	subs    []func()
}

// NewPostsStore loads the persisted collection; absent or corrupt data starts
// empty.
func NewPostsStore(ctx context.Context, sub substrate.Substrate) *PostsStore {
	s := &PostsStore{sub: sub}
	loadJSON(ctx, sub, substrate.KeyPosts, &s.posts)
	return s
}

// CreatePostParams carries caller input for CreatePost. Content has no upper
// length bound here; display truncation is a view concern.
type CreatePostParams struct {
	UserID   string `json:"userId" validate:"required"`
	Content  string `json:"content" validate:"notblank"`
	ImageURL string `json:"imageUrl"`
}

type toggleLikeParams struct {
	PostID string `json:"postId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

type commentParams struct {
	PostID  string `json:"postId" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
	Content string `json:"content" validate:"notblank"`
}

// CreatePost validates, stamps and prepends a new post.
func (s *PostsStore) CreatePost(ctx context.Context, params CreatePostParams) (model.Post, error) {
	if err := checkParams(params); err != nil {
		s.setErr(err.Error())
		return model.Post{}, err
	}

	post := model.Post{
		ID:        uuid.NewString(),
		UserID:    params.UserID,
		Content:   params.Content,
		ImageURL:  params.ImageURL,
		Likes:     []string{},
		Comments:  []model.Comment{},
		Timestamp: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	next := make([]model.Post, 0, len(s.posts)+1)
	next = append(next, post.Clone())
	next = append(next, model.ClonePosts(s.posts)...)
	perr := writeJSON(ctx, s.sub, substrate.KeyPosts, next)
	s.posts = next
	s.finishLocked(perr)

	if perr != nil {
		return post, perr
	}
	return post, nil
}

// ToggleLike flips userID's membership in the post's like set. An unknown
// postID changes nothing.
func (s *PostsStore) ToggleLike(ctx context.Context, postID, userID string) error {
	if err := checkParams(toggleLikeParams{PostID: postID, UserID: userID}); err != nil {
		s.setErr(err.Error())
		return err
	}

	s.mu.Lock()
	next := make([]model.Post, len(s.posts))
	for i, p := range s.posts {
		c := p.Clone()
		if c.ID == postID {
			c.Likes = model.ToggleID(c.Likes, userID)
		}
		next[i] = c
	}
	perr := writeJSON(ctx, s.sub, substrate.KeyPosts, next)
	s.posts = next
	s.finishLocked(perr)

	if perr != nil {
		return perr
	}
	return nil
}

// AddComment appends a stamped comment to the post, preserving the order of
// the ones already there. An unknown postID changes nothing.
func (s *PostsStore) AddComment(ctx context.Context, postID, userID, content string) (model.Comment, error) {
	if err := checkParams(commentParams{PostID: postID, UserID: userID, Content: content}); err != nil {
		s.setErr(err.Error())
		return model.Comment{}, err
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	next := make([]model.Post, len(s.posts))
	for i, p := range s.posts {
		c := p.Clone()
		if c.ID == postID {
			c.Comments = append(c.Comments, comment)
		}
		next[i] = c
	}
	perr := writeJSON(ctx, s.sub, substrate.KeyPosts, next)
	s.posts = next
	s.finishLocked(perr)

	if perr != nil {
		return comment, perr
	}
	return comment, nil
}

// Posts returns the current snapshot, newest first. Callers must treat it as
// read-only.
func (s *PostsStore) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// PostByID resolves one post from the current snapshot.
func (s *PostsStore) PostByID(id string) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return model.Post{}, false
}

// Err returns the last operation's failure message, empty after a success.
func (s *PostsStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers fn to run synchronously after every snapshot change.
func (s *PostsStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *PostsStore) finishLocked(perr *PersistenceError) {
	if perr != nil {
		s.lastErr = perr.Error()
	} else {
		s.lastErr = ""
	}
	subs := s.subs
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *PostsStore) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
