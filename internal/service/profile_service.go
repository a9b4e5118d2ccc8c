package service

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/matching"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/validation"
)

// profileService is the concrete implementation of ProfileService
type profileService struct {
	repos *repository.Repositories
	feed  Feed
	log   zerolog.Logger
}

// newProfileService creates a new ProfileService
func newProfileService(repos *repository.Repositories, feed Feed, log zerolog.Logger) *profileService {
	return &profileService{
		repos: repos,
		feed:  feed,
		log:   log.With().Str("service", "profile").Logger(),
	}
}

// Search lists public profiles matching query
func (s *profileService) Search(query string) []models.User {
	return s.repos.User.ListPublic(query)
}

// Get returns any profile by id, including private ones
func (s *profileService) Get(id string) (*models.User, error) {
	u := s.repos.User.GetByID(id)
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

// Save validates and upserts a profile. The bool result is false when the
// patch carried no name and nothing was stored.
func (s *profileService) Save(patch *models.ProfilePatch) (*models.User, bool, error) {
	if errs := validation.NewValidator().ValidateProfile(patch); len(errs) > 0 {
		return nil, false, errs
	}

	u, ok := s.repos.User.Upsert(patch)
	if !ok {
		s.log.Debug().Str("user_id", patch.ID).Msg("Profile without a name not saved")
		return nil, false, nil
	}

	s.log.Info().Str("user_id", u.ID).Msg("Profile saved")
	s.feed.Notify("Profile Updated", "Your profile has been saved successfully!", models.SeverityInfo)
	return &u, true, nil
}

// AddSkill appends a label to one of the user's lists
func (s *profileService) AddSkill(userID string, list models.SkillList, label string) (*models.User, error) {
	if errs := validation.NewValidator().ValidateLabel(list, label); len(errs) > 0 {
		return nil, errs
	}
	return s.updateLabels(userID, func(u *models.User) bool {
		return u.AddLabel(list, label)
	})
}

// RemoveSkill drops every occurrence of label from one of the user's lists.
// Removing a label that is not present leaves the profile unchanged.
func (s *profileService) RemoveSkill(userID string, list models.SkillList, label string) (*models.User, error) {
	if !models.ValidSkillLists[list] {
		return nil, validation.Errors{{Field: "list", Message: "list must be one of: offered, wanted, availability", Value: string(list)}}
	}
	return s.updateLabels(userID, func(u *models.User) bool {
		return u.RemoveLabel(list, label)
	})
}

func (s *profileService) updateLabels(userID string, fn func(u *models.User) bool) (*models.User, error) {
	if s.repos.User.GetByID(userID) == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	u, changed := s.repos.User.Update(userID, fn)
	if changed {
		s.feed.Notify("Profile Updated", "Your profile has been saved successfully!", models.SeverityInfo)
	}
	return &u, nil
}

// Match computes what fromID can offer toID and what it can ask for in return
func (s *profileService) Match(fromID, toID string) (*matching.Match, error) {
	from := s.repos.User.GetByID(fromID)
	if from == nil {
		return nil, fmt.Errorf("user %s: %w", fromID, ErrNotFound)
	}
	to := s.repos.User.GetByID(toID)
	if to == nil {
		return nil, fmt.Errorf("user %s: %w", toID, ErrNotFound)
	}

	m := matching.Compute(from, to)
	return &m, nil
}
