package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/matching"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/notify"
	"github.com/skillswap-api/internal/repository"
)

// ProfileService defines the interface for directory operations
type ProfileService interface {
	Search(query string) []models.User
	Get(id string) (*models.User, error)
	Save(patch *models.ProfilePatch) (*models.User, bool, error)
	AddSkill(userID string, list models.SkillList, label string) (*models.User, error)
	RemoveSkill(userID string, list models.SkillList, label string) (*models.User, error)
	Match(fromID, toID string) (*matching.Match, error)
}

// SwapService defines the interface for swap request operations
type SwapService interface {
	Submit(actor access.Actor, sub *models.SwapSubmission) (*models.SwapRequest, error)
	Respond(actor access.Actor, id string, status models.SwapStatus) (*models.SwapRequest, error)
	Delete(actor access.Actor, id string) error
	Get(id string) (*models.SwapRequest, error)
	List(userID string) []models.SwapRequest
}

// AdminService defines the moderation operations. Every call requires an
// actor that can moderate.
type AdminService interface {
	Overview(actor access.Actor) (*models.Overview, error)
	Users(actor access.Actor) ([]models.User, error)
	Swaps(actor access.Actor) ([]models.SwapView, error)
	Reports(actor access.Actor) ([]models.ReportedSkill, error)
	Ban(actor access.Actor, userID string) (*models.User, error)
	ApproveReport(actor access.Actor, id string) (*models.ReportedSkill, error)
	RejectReport(actor access.Actor, id string) (*models.ReportedSkill, error)
	Broadcast(actor access.Actor, message string) (*models.Notification, error)
}

// ExportService defines the interface for report downloads
type ExportService interface {
	StreamReport(ctx context.Context, actor access.Actor, w io.Writer, report models.ReportType, format string) error
}

// ImportService defines the interface for bulk profile imports
type ImportService interface {
	Import(ctx context.Context, actor access.Actor, r io.Reader, format string) (*models.ImportResult, error)
}

// Feed is where services publish notifications and read the history back
type Feed interface {
	notify.Notifier
	Recent(n int) []models.Notification
}

// Services holds all service interfaces
type Services struct {
	Profile ProfileService
	Swap    SwapService
	Admin   AdminService
	Export  ExportService
	Import  ImportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, feed Feed, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Profile: newProfileService(repos, feed, log),
		Swap:    newSwapService(repos, feed, cfg.Market.ReferencePolicy, log),
		Admin:   newAdminService(repos, feed, log),
		Export:  newExportService(repos, feed, log),
		Import:  newImportService(repos, feed, log),
	}
}

func requireAdmin(actor access.Actor) error {
	if !actor.CanModerate() {
		return ErrForbidden
	}
	return nil
}
