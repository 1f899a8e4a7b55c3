package model

// Comment lives inside its parent post; appended, never edited or removed.
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Post is one feed entry. Likes holds liker user ids without duplicates;
// Comments keep insertion order. Timestamp is wall-clock milliseconds.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	Timestamp int64     `json:"timestamp"`
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	return contains(p.Likes, userID)
}

// Clone returns a deep copy so a published snapshot never aliases store state.
func (p Post) Clone() Post {
	c := p
	c.Likes = cloneIDs(p.Likes)
	c.Comments = make([]Comment, len(p.Comments))
	copy(c.Comments, p.Comments)
	return c
}

// ClonePosts deep-copies a post slice.
func ClonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// CloneUsers deep-copies a user slice.
func CloneUsers(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
