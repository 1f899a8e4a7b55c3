package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndaedxo/Social-Media-Platform/internal/model"
	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
	"github.com/ndaedxo/Social-Media-Platform/pkg/logger"
)

// IdentityStore owns the user directory and the current session. Every
// mutation computes a fresh directory snapshot, attempts the durable write,
// then publishes the snapshot whether or not the write landed; the write
// outcome travels back as a *PersistenceError and in Err().
type IdentityStore struct {
	sub substrate.Substrate

	mu      sync.RWMutex
	users   []model.User
	current *model.User
	lastErr string
	subs    []func()
}

// NewIdentityStore loads the persisted directory and session. Absent or
// corrupt slots start empty.
func NewIdentityStore(ctx context.Context, sub substrate.Substrate) *IdentityStore {
	s := &IdentityStore{sub: sub}
	loadJSON(ctx, sub, substrate.KeyUsers, &s.users)
	var cur model.User
	if loadJSON(ctx, sub, substrate.KeyCurrentUser, &cur) {
		s.current = &cur
	}
	return s
}

type loginParams struct {
	Username string `json:"username" validate:"notblank"`
}

type updateUserParams struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type toggleFollowParams struct {
	ActorID  string `json:"actorId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// Login resolves username to an existing directory entry or creates one, then
// makes it the session. The username is matched and stored exactly as given;
// only whitespace-only input is rejected.
func (s *IdentityStore) Login(ctx context.Context, username string) (model.User, error) {
	if err := checkParams(loginParams{Username: username}); err != nil {
		s.setErr(err.Error())
		return model.User{}, err
	}

	s.mu.Lock()
	var user model.User
	found := false
	for _, u := range s.users {
		if u.Username == username {
			user = u.Clone()
			found = true
			break
		}
	}

	var perr *PersistenceError
	if !found {
		user = model.User{
			ID:        uuid.NewString(),
			Username:  username,
			Followers: []string{},
			Following: []string{},
		}
		next := append(model.CloneUsers(s.users), user.Clone())
		perr = writeJSON(ctx, s.sub, substrate.KeyUsers, next)
		s.users = next
	}
	if p := writeJSON(ctx, s.sub, substrate.KeyCurrentUser, user); perr == nil {
		perr = p
	}
	cur := user.Clone()
	s.current = &cur
	s.finishLocked(perr)

	if perr != nil {
		return user, perr
	}
	return user, nil
}

// Logout clears the session. The in-memory session is gone even when removing
// the persisted pointer fails: a stale persisted session is worse than a
// reported removal failure.
func (s *IdentityStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	var perr *PersistenceError
	if err := s.sub.Remove(ctx, substrate.KeyCurrentUser); err != nil {
		perr = &PersistenceError{Key: substrate.KeyCurrentUser, Err: err}
		logger.Warn("clearing persisted session failed", zap.Error(err))
	}
	s.finishLocked(perr)

	if perr != nil {
		return perr
	}
	return nil
}

// UpdateUser replaces the directory entry with the same id. An unknown id
// leaves the directory as it was. When the updated user is the session user
// the session pointer follows.
func (s *IdentityStore) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	if err := checkParams(updateUserParams{ID: user.ID, Username: user.Username}); err != nil {
		s.setErr(err.Error())
		return model.User{}, err
	}

	s.mu.Lock()
	next := make([]model.User, len(s.users))
	for i, u := range s.users {
		if u.ID == user.ID {
			next[i] = user.Clone()
		} else {
			next[i] = u.Clone()
		}
	}
	perr := writeJSON(ctx, s.sub, substrate.KeyUsers, next)
	s.users = next

	if s.current != nil && s.current.ID == user.ID {
		cur := user.Clone()
		s.current = &cur
		if p := writeJSON(ctx, s.sub, substrate.KeyCurrentUser, user); perr == nil {
			perr = p
		}
	}
	s.finishLocked(perr)

	if perr != nil {
		return user, perr
	}
	return user, nil
}

// ToggleFollow flips the follow edge actor→target: actor.Following gains or
// loses targetID while target.Followers gains or loses actorID, in one
// directory write. Applying it twice restores both records.
func (s *IdentityStore) ToggleFollow(ctx context.Context, actorID, targetID string) error {
	if err := checkParams(toggleFollowParams{ActorID: actorID, TargetID: targetID}); err != nil {
		s.setErr(err.Error())
		return err
	}
	if actorID == targetID {
		s.setErr(ErrFollowSelf.Error())
		return ErrFollowSelf
	}

	s.mu.Lock()
	next := make([]model.User, len(s.users))
	for i, u := range s.users {
		c := u.Clone()
		switch u.ID {
		case actorID:
			c.Following = model.ToggleID(c.Following, targetID)
		case targetID:
			c.Followers = model.ToggleID(c.Followers, actorID)
		}
		next[i] = c
	}
	perr := writeJSON(ctx, s.sub, substrate.KeyUsers, next)
	s.users = next

	if s.current != nil && (s.current.ID == actorID || s.current.ID == targetID) {
		for _, u := range next {
			if u.ID == s.current.ID {
				cur := u.Clone()
				s.current = &cur
				if p := writeJSON(ctx, s.sub, substrate.KeyCurrentUser, u); perr == nil {
					perr = p
				}
				break
			}
		}
	}
	s.finishLocked(perr)

	if perr != nil {
		return perr
	}
	return nil
}

// CurrentUser returns the session user, if any.
func (s *IdentityStore) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.User{}, false
	}
	return s.current.Clone(), true
}

// Users returns the directory snapshot. Callers must treat it as read-only.
func (s *IdentityStore) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

// UserByID resolves a directory entry by id.
func (s *IdentityStore) UserByID(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return model.User{}, false
}

// UserByUsername resolves a directory entry by exact username.
func (s *IdentityStore) UserByUsername(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u.Clone(), true
		}
	}
	return model.User{}, false
}

// Err returns the last operation's failure message, empty after a success.
func (s *IdentityStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers fn to run synchronously after every snapshot change.
func (s *IdentityStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// finishLocked records the write outcome, releases the lock and notifies
// subscribers of the published snapshot.
func (s *IdentityStore) finishLocked(perr *PersistenceError) {
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

func (s *IdentityStore) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
