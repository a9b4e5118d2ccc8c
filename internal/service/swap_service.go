package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/matching"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/validation"
)

// swapService is the concrete implementation of SwapService
type swapService struct {
	repos  *repository.Repositories
	feed   Feed
	policy config.ReferencePolicy
	log    zerolog.Logger
}

// newSwapService creates a new SwapService
func newSwapService(repos *repository.Repositories, feed Feed, policy config.ReferencePolicy, log zerolog.Logger) *swapService {
	if policy == "" {
		policy = config.ReferenceStrict
	}
	return &swapService{
		repos:  repos,
		feed:   feed,
		policy: policy,
		log:    log.With().Str("service", "swap").Logger(),
	}
}

// Submit records a new pending request after checking that the pair can
// trade and that both selected skills come from the computed candidates.
// An empty FromUserID defaults to the acting user.
func (s *swapService) Submit(actor access.Actor, sub *models.SwapSubmission) (*models.SwapRequest, error) {
	if sub.FromUserID == "" {
		sub.FromUserID = actor.UserID
	}
	if !actor.Is(sub.FromUserID) && !actor.CanModerate() {
		return nil, fmt.Errorf("acting as %q for %q: %w", actor.UserID, sub.FromUserID, ErrForbidden)
	}

	errs := validation.NewValidator().ValidateSubmission(sub)
	for _, e := range errs {
		if e.Field == "from_user_id" || e.Field == "to_user_id" {
			return nil, errs
		}
	}

	from, to, err := s.resolvePair(sub.FromUserID, sub.ToUserID)
	if err != nil {
		return nil, err
	}
	if from != nil && from.IsBanned {
		return nil, fmt.Errorf("user %s: %w", from.ID, ErrBanned)
	}
	if from != nil && to != nil && !matching.CanRequest(from, to) {
		return nil, ErrNoMatchingSkills
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if from != nil && to != nil {
		if !matching.Contains(matching.OfferableSkills(from, to), sub.SkillOffered) {
			return nil, fmt.Errorf("offered skill %q: %w", sub.SkillOffered, ErrInvalidSkill)
		}
		if !matching.Contains(matching.RequestableSkills(from, to), sub.SkillRequested) {
			return nil, fmt.Errorf("requested skill %q: %w", sub.SkillRequested, ErrInvalidSkill)
		}
	}

	req := s.repos.Swap.Create(sub.FromUserID, sub.ToUserID, sub.SkillOffered, sub.SkillRequested, sub.Message)

	s.log.Info().
		Str("swap_id", req.ID).
		Str("from", req.FromUserID).
		Str("to", req.ToUserID).
		Msg("Swap request created")
	s.feed.Notify("Swap Request Sent", "Your skill swap request has been sent!", models.SeverityInfo)

	return &req, nil
}

// resolvePair loads both users. Under the lenient policy a missing user is
// returned as nil instead of an error.
func (s *swapService) resolvePair(fromID, toID string) (*models.User, *models.User, error) {
	from := s.repos.User.GetByID(fromID)
	to := s.repos.User.GetByID(toID)
	if s.policy == config.ReferenceLenient {
		return from, to, nil
	}

	var missing []error
	if from == nil {
		missing = append(missing, fmt.Errorf("from user %s: %w", fromID, ErrUnknownUser))
	}
	if to == nil {
		missing = append(missing, fmt.Errorf("to user %s: %w", toID, ErrUnknownUser))
	}
	if len(missing) > 0 {
		return nil, nil, errors.Join(missing...)
	}
	return from, to, nil
}

// Respond moves a pending request to accepted or rejected. Only the target
// user may respond.
func (s *swapService) Respond(actor access.Actor, id string, status models.SwapStatus) (*models.SwapRequest, error) {
	if !models.ResponseStatuses[status] {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	req := s.repos.Swap.GetByID(id)
	if req == nil {
		return nil, fmt.Errorf("swap request %s: %w", id, ErrNotFound)
	}
	if !actor.Is(req.ToUserID) {
		return nil, fmt.Errorf("only the recipient can respond: %w", ErrForbidden)
	}
	if req.Status != models.SwapStatusPending {
		return nil, fmt.Errorf("swap request %s is %s: %w", id, req.Status, ErrNotPending)
	}

	updated, ok := s.repos.Swap.SetStatusIf(id, models.SwapStatusPending, status)
	if !ok {
		return nil, s.lostRace(id)
	}

	s.log.Info().Str("swap_id", id).Str("status", string(status)).Msg("Swap request answered")
	title := "Request Rejected"
	if status == models.SwapStatusAccepted {
		title = "Request Accepted"
	}
	s.feed.Notify(title, fmt.Sprintf("The swap request has been %s.", status), models.SeverityInfo)

	return &updated, nil
}

// Delete removes a pending request. Only its creator or an admin may delete it.
func (s *swapService) Delete(actor access.Actor, id string) error {
	req := s.repos.Swap.GetByID(id)
	if req == nil {
		return fmt.Errorf("swap request %s: %w", id, ErrNotFound)
	}
	if !actor.Is(req.FromUserID) && !actor.CanModerate() {
		return fmt.Errorf("only the creator can delete: %w", ErrForbidden)
	}
	if req.Status != models.SwapStatusPending {
		return fmt.Errorf("swap request %s is %s: %w", id, req.Status, ErrNotPending)
	}

	stillPending := func(r models.SwapRequest) bool { return r.Status == models.SwapStatusPending }
	if !s.repos.Swap.RemoveIf(id, stillPending) {
		return s.lostRace(id)
	}

	s.log.Info().Str("swap_id", id).Msg("Swap request deleted")
	s.feed.Notify("Request Deleted", "The swap request has been deleted.", models.SeverityInfo)
	return nil
}

// lostRace explains a conditional write that failed after the checks passed:
// another request resolved or removed the swap in between.
func (s *swapService) lostRace(id string) error {
	req := s.repos.Swap.GetByID(id)
	if req == nil {
		return fmt.Errorf("swap request %s: %w", id, ErrNotFound)
	}
	return fmt.Errorf("swap request %s is %s: %w", id, req.Status, ErrNotPending)
}

// Get returns a request by id
func (s *swapService) Get(id string) (*models.SwapRequest, error) {
	req := s.repos.Swap.GetByID(id)
	if req == nil {
		return nil, fmt.Errorf("swap request %s: %w", id, ErrNotFound)
	}
	return req, nil
}

// List returns the whole ledger, or the requests involving userID when set
func (s *swapService) List(userID string) []models.SwapRequest {
	if userID == "" {
		return s.repos.Swap.ListAll()
	}
	return s.repos.Swap.ListByUser(userID)
}
