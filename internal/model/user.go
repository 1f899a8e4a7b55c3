package model

// User is one identity record in the directory. Followers and Following hold
// user ids; insertion order is kept but membership is what matters.
type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Avatar    string   `json:"avatar,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

// Follows reports whether the user follows the given user id.
func (u User) Follows(userID string) bool {
	return contains(u.Following, userID)
}

// Clone returns a deep copy so a published snapshot never aliases store state.
func (u User) Clone() User {
	c := u
	c.Followers = cloneIDs(u.Followers)
	c.Following = cloneIDs(u.Following)
	return c
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ToggleID flips membership of id in ids: append when absent, remove when
// present. The result is always a fresh slice.
func ToggleID(ids []string, id string) []string {
	if !contains(ids, id) {
		out := make([]string, 0, len(ids)+1)
		out = append(out, ids...)
		return append(out, id)
	}
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
