// Package seed provides the sample marketplace records the service starts with.
package seed

import (
	"fmt"
	"os"
	"time"

	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"gopkg.in/yaml.v3"
)

// Fixture is a complete starting state
type Fixture struct {
	Users   []models.User          `yaml:"users"`
	Swaps   []models.SwapRequest   `yaml:"swaps"`
	Reports []models.ReportedSkill `yaml:"reports"`
}

// Load reads a YAML fixture file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Name == "" {
			return nil, fmt.Errorf("seed user %d: name is required", i)
		}
	}
	// A blank status is seeded as pending
	for i, sw := range f.Swaps {
		if sw.Status != "" && !models.SwapStatuses[sw.Status] {
			return nil, fmt.Errorf("seed swap %d: unknown status %q", i, sw.Status)
		}
	}
	for i, r := range f.Reports {
		if r.Status != "" && !models.ReportStatuses[r.Status] {
			return nil, fmt.Errorf("seed report %d: unknown status %q", i, r.Status)
		}
	}
	return &f, nil
}

// Apply replaces the repository contents with the fixture
func (f *Fixture) Apply(repos *repository.Repositories) {
	repos.User.Seed(f.Users)
	repos.Swap.Seed(f.Swaps)
	repos.Report.Seed(f.Reports)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Sample returns the built-in marketplace sample data
func Sample() *Fixture {
	return &Fixture{
		Users: []models.User{
			{
				ID:            "1",
				Name:          "Sarah Chen",
				Location:      "San Francisco, CA",
				AvatarRef:     "/placeholder.svg",
				SkillsOffered: []string{"Photoshop", "UI/UX Design", "Figma"},
				SkillsWanted:  []string{"Python", "Data Analysis"},
				Availability:  []string{"Weekends", "Evenings"},
				IsPublic:      true,
				Rating:        4.8,
				ReviewCount:   12,
				JoinedAt:      date("2024-01-15"),
			},
			{
				ID:            "2",
				Name:          "Marcus Johnson",
				Location:      "New York, NY",
				SkillsOffered: []string{"Python", "Machine Learning", "Excel"},
				SkillsWanted:  []string{"Guitar", "Spanish"},
				Availability:  []string{"Weekends"},
				IsPublic:      true,
				Rating:        4.9,
				ReviewCount:   8,
				ReportCount:   1,
				JoinedAt:      date("2024-02-20"),
			},
			{
				ID:            "3",
				Name:          "Elena Rodriguez",
				Location:      "Austin, TX",
				SkillsOffered: []string{"Spanish", "Cooking", "Photography"},
				SkillsWanted:  []string{"Web Development", "Marketing"},
				Availability:  []string{"Evenings", "Weekends"},
				IsPublic:      true,
				Rating:        4.7,
				ReviewCount:   15,
				JoinedAt:      date("2024-03-04"),
			},
			{
				ID:            "4",
				Name:          "Spam User",
				SkillsOffered: []string{"Make money fast online"},
				SkillsWanted:  []string{},
				Availability:  []string{},
				IsPublic:      false,
				ReportCount:   3,
				JoinedAt:      date("2024-07-01"),
			},
		},
		Swaps: []models.SwapRequest{
			{
				ID:             "1",
				FromUserID:     "1",
				ToUserID:       "2",
				SkillOffered:   "Photoshop",
				SkillRequested: "Python",
				Status:         models.SwapStatusPending,
				Message:        "I'd love to learn Python basics!",
				CreatedAt:      date("2024-07-10"),
				UpdatedAt:      date("2024-07-10"),
			},
			{
				ID:             "2",
				FromUserID:     "2",
				ToUserID:       "1",
				SkillOffered:   "Machine Learning",
				SkillRequested: "UI/UX Design",
				Status:         models.SwapStatusAccepted,
				Message:        "Happy to teach ML concepts",
				CreatedAt:      date("2024-07-08"),
				UpdatedAt:      date("2024-07-09"),
			},
		},
		Reports: []models.ReportedSkill{
			{
				ID:           "1",
				UserID:       "4",
				UserName:     "Spam User",
				Skill:        "Make money fast online",
				Type:         models.SkillListOffered,
				ReportReason: "Inappropriate/Spam content",
				ReportedAt:   date("2024-07-11"),
				Status:       models.ReportStatusPending,
			},
		},
	}
}
