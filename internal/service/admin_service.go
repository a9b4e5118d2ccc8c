package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/validation"
)

// adminService is the concrete implementation of AdminService
type adminService struct {
	repos *repository.Repositories
	feed  Feed
	log   zerolog.Logger
}

// newAdminService creates a new AdminService
func newAdminService(repos *repository.Repositories, feed Feed, log zerolog.Logger) *adminService {
	return &adminService{
		repos: repos,
		feed:  feed,
		log:   log.With().Str("service", "admin").Logger(),
	}
}

// Overview returns the dashboard counters
func (s *adminService) Overview(actor access.Actor) (*models.Overview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return &models.Overview{
		TotalUsers:     s.repos.User.Count(),
		PendingSwaps:   s.repos.Swap.CountByStatus(models.SwapStatusPending),
		PendingReports: s.repos.Report.CountByStatus(models.ReportStatusPending),
		BannedUsers:    s.repos.User.CountBanned(),
	}, nil
}

// Users lists every profile, private and banned ones included
func (s *adminService) Users(actor access.Actor) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repos.User.List(), nil
}

// Swaps lists the ledger with the display names of both parties.
// Names of users missing from the directory are left empty.
func (s *adminService) Swaps(actor access.Actor) ([]models.SwapView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	names := make(map[string]string)
	for _, u := range s.repos.User.List() {
		names[u.ID] = u.Name
	}

	requests := s.repos.Swap.ListAll()
	views := make([]models.SwapView, 0, len(requests))
	for _, req := range requests {
		views = append(views, models.SwapView{
			SwapRequest:  req,
			FromUserName: names[req.FromUserID],
			ToUserName:   names[req.ToUserID],
		})
	}
	return views, nil
}

// Reports lists the reported skills
func (s *adminService) Reports(actor access.Actor) ([]models.ReportedSkill, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repos.Report.List(), nil
}

// Ban flags a user as banned
func (s *adminService) Ban(actor access.Actor, userID string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !s.repos.User.Ban(userID) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	u := s.repos.User.GetByID(userID)

	s.log.Warn().Str("user_id", userID).Str("admin", actor.UserID).Msg("User banned")
	s.feed.Notify("User Banned", fmt.Sprintf("%s has been banned from the platform.", u.Name), models.SeverityDestructive)
	return u, nil
}

// ApproveReport acknowledges a report, keeping the skill visible.
// The report itself is not changed.
func (s *adminService) ApproveReport(actor access.Actor, id string) (*models.ReportedSkill, error) {
	rep, err := s.report(actor, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("report_id", id).Msg("Reported skill approved")
	s.feed.Notify("Skill Approved", "The skill has been approved and will remain visible.", models.SeverityInfo)
	return rep, nil
}

// RejectReport acknowledges a report as rejected.
// The report itself is not changed.
func (s *adminService) RejectReport(actor access.Actor, id string) (*models.ReportedSkill, error) {
	rep, err := s.report(actor, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("report_id", id).Msg("Reported skill rejected")
	s.feed.Notify("Skill Rejected", "The reported skill has been removed.", models.SeverityInfo)
	return rep, nil
}

func (s *adminService) report(actor access.Actor, id string) (*models.ReportedSkill, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	rep := s.repos.Report.GetByID(id)
	if rep == nil {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return rep, nil
}

// Broadcast pushes message to every feed subscriber, then acknowledges it
func (s *adminService) Broadcast(actor access.Actor, message string) (*models.Notification, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validation.Errors{{Field: "message", Message: "message is required"}}
	}
	if utf8.RuneCountInString(message) > validation.MaxMessageLength {
		return nil, validation.Errors{{Field: "message", Message: fmt.Sprintf("message exceeds %d characters", validation.MaxMessageLength)}}
	}

	n := s.feed.Notify("Platform Message", message, models.SeverityInfo)
	s.feed.Notify("Platform Message Sent", "Your message has been sent to all users.", models.SeverityInfo)
	s.log.Info().Str("notification_id", n.ID).Msg("Platform message broadcast")
	return &n, nil
}
