package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillswap-api/internal/models"
)

// userRepo is the in-memory implementation of UserRepository.
// Entries keep insertion order; index maps id to slice position.
type userRepo struct {
	mu         sync.RWMutex
	users      []*models.User
	index      map[string]int
	hideBanned bool
	now        func() time.Time
}

// NewUserRepo creates an empty user directory
func NewUserRepo(opts Options) UserRepository {
	return &userRepo{
		index:      make(map[string]int),
		hideBanned: opts.HideBanned,
		now:        time.Now,
	}
}

// ListPublic returns public users matching query in directory order
func (r *userRepo) ListPublic(query string) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if !u.IsPublic {
			continue
		}
		if r.hideBanned && u.IsBanned {
			continue
		}
		if !u.MatchesQuery(query) {
			continue
		}
		out = append(out, u.Clone())
	}
	return out
}

// Upsert merges patch into the user with the same id, or appends a new user.
// A patch without a name is not committed.
func (r *userRepo) Upsert(patch *models.ProfilePatch) (models.User, bool) {
	if patch == nil || !patch.HasName() {
		return models.User{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pos, ok := r.index[patch.ID]; ok && patch.ID != "" {
		u := r.users[pos]
		patch.Apply(u)
		return u.Clone(), true
	}

	u := &models.User{
		ID:            patch.ID,
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		Availability:  []string{},
		IsPublic:      true,
		JoinedAt:      r.now().UTC(),
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	patch.Apply(u)
	r.append(u)
	return u.Clone(), true
}

// Ban flags the user as banned
func (r *userRepo) Ban(id string) bool {
	_, ok := r.Update(id, func(u *models.User) bool {
		u.IsBanned = true
		return true
	})
	return ok
}

// Update runs fn against the stored user under the write lock.
// fn reports whether it changed anything.
func (r *userRepo) Update(id string, fn func(u *models.User) bool) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return models.User{}, false
	}
	u := r.users[pos]
	changed := fn(u)
	return u.Clone(), changed
}

// GetByID retrieves a copy of a user, nil if unknown
func (r *userRepo) GetByID(id string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil
	}
	u := r.users[pos].Clone()
	return &u
}

// List returns every user, including private and banned ones
func (r *userRepo) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out
}

// Count returns the total number of users
func (r *userRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// CountBanned returns the number of banned users
func (r *userRepo) CountBanned() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if u.IsBanned {
			count++
		}
	}
	return count
}

// Seed replaces the directory contents with users
func (r *userRepo) Seed(users []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = r.users[:0]
	r.index = make(map[string]int, len(users))
	for i := range users {
		u := users[i].Clone()
		if u.ID == "" {
			u.ID = uuid.New().String()
		}
		if _, dup := r.index[u.ID]; dup {
			continue
		}
		r.append(&u)
	}
}

// StreamAll walks a snapshot of the directory in order
func (r *userRepo) StreamAll(ctx context.Context, callback func(*models.User) error) error {
	for _, u := range r.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		u := u
		if err := callback(&u); err != nil {
			return err
		}
	}
	return nil
}

// append must be called with the write lock held
func (r *userRepo) append(u *models.User) {
	r.index[u.ID] = len(r.users)
	r.users = append(r.users, u)
}
