package repository

import (
	"context"

	"github.com/skillswap-api/internal/models"
)

// UserRepository is the user directory. Mutators report whether they applied
// instead of returning errors: invalid input is silently ignored.
type UserRepository interface {
	ListPublic(query string) []models.User
	Upsert(patch *models.ProfilePatch) (models.User, bool)
	Ban(id string) bool
	Update(id string, fn func(u *models.User) bool) (models.User, bool)
	GetByID(id string) *models.User
	List() []models.User
	Count() int
	CountBanned() int
	Seed(users []models.User)
	StreamAll(ctx context.Context, callback func(*models.User) error) error
}

// SwapRepository is the swap request ledger
type SwapRepository interface {
	Create(fromUserID, toUserID, skillOffered, skillRequested, message string) models.SwapRequest
	SetStatus(id string, status models.SwapStatus) bool
	SetStatusIf(id string, from, to models.SwapStatus) (models.SwapRequest, bool)
	Remove(id string) bool
	RemoveIf(id string, pred func(models.SwapRequest) bool) bool
	GetByID(id string) *models.SwapRequest
	ListAll() []models.SwapRequest
	ListByUser(userID string) []models.SwapRequest
	CountByStatus(status models.SwapStatus) int
	Seed(requests []models.SwapRequest)
	StreamAll(ctx context.Context, callback func(*models.SwapRequest) error) error
}

// ReportRepository holds reported skills for the moderation view
type ReportRepository interface {
	List() []models.ReportedSkill
	GetByID(id string) *models.ReportedSkill
	CountByStatus(status models.ReportStatus) int
	Seed(reports []models.ReportedSkill)
}

// Options tunes repository behaviour
type Options struct {
	// HideBanned drops banned users from the public listing
	HideBanned bool
}

// Repositories holds all repository interfaces
type Repositories struct {
	User   UserRepository
	Swap   SwapRepository
	Report ReportRepository
}

// New creates empty in-memory repositories
func New(opts Options) *Repositories {
	return &Repositories{
		User:   NewUserRepo(opts),
		Swap:   NewSwapRepo(),
		Report: NewReportRepo(),
	}
}
