// Package feed derives read-side views from store snapshots: feed filtering,
// ordering, visible-count paging, profile aggregation and user search. All
// functions are pure; they never reach back into a store.
package feed

import (
	"sort"
	"strings"

	"github.com/ndaedxo/Social-Media-Platform/internal/model"
)

// Visible filters posts for a viewer. With followingOnly set, only posts
// authored by the viewer or by someone the viewer follows pass.
func Visible(posts []model.Post, viewer model.User, followingOnly bool) []model.Post {
	if !followingOnly {
		return posts
	}
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if p.UserID == viewer.ID || viewer.Follows(p.UserID) {
			out = append(out, p)
		}
	}
	return out
}

// SortByNewest returns posts ordered strictly descending by timestamp. Ties
// keep their relative input order.
func SortByNewest(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Page returns the first visible posts. Paging forward is just asking again
// with a larger visible count.
func Page(posts []model.Post, visible int) []model.Post {
	if visible < 0 {
		visible = 0
	}
	if visible > len(posts) {
		visible = len(posts)
	}
	return posts[:visible]
}

// Profile aggregates one user's public numbers and their posts, newest first.
type Profile struct {
	User      model.User
	Followers int
	Following int
	PostCount int
	Posts     []model.Post
}

// BuildProfile computes the profile view for user from the posts snapshot.
func BuildProfile(user model.User, posts []model.Post) Profile {
	own := make([]model.Post, 0)
	for _, p := range posts {
		if p.UserID == user.ID {
			own = append(own, p)
		}
	}
	own = SortByNewest(own)
	return Profile{
		User:      user,
		Followers: len(user.Followers),
		Following: len(user.Following),
		PostCount: len(own),
		Posts:     own,
	}
}

// SearchUsers returns users whose username contains term, case-insensitively.
// An empty term matches everyone.
func SearchUsers(users []model.User, term string) []model.User {
	term = strings.ToLower(term)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), term) {
			out = append(out, u)
		}
	}
	return out
}
