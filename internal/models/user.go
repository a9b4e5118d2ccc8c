package models

import (
	"strings"
	"time"
)

// User represents a marketplace profile
type User struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Location      string    `json:"location,omitempty" yaml:"location"`
	AvatarRef     string    `json:"avatar,omitempty" yaml:"avatar"`
	SkillsOffered []string  `json:"skills_offered" yaml:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted" yaml:"skills_wanted"`
	Availability  []string  `json:"availability" yaml:"availability"`
	IsPublic      bool      `json:"is_public" yaml:"is_public"`
	Rating        float64   `json:"rating" yaml:"rating"`
	ReviewCount   int       `json:"review_count" yaml:"review_count"`
	IsBanned      bool      `json:"is_banned" yaml:"is_banned"`
	ReportCount   int       `json:"report_count" yaml:"report_count"`
	JoinedAt      time.Time `json:"joined_at" yaml:"joined_at"`
}

// SkillList names one of the ordered label collections on a User
type SkillList string

const (
	SkillListOffered      SkillList = "offered"
	SkillListWanted       SkillList = "wanted"
	SkillListAvailability SkillList = "availability"
)

// ValidSkillLists defines the addressable label collections
var ValidSkillLists = map[SkillList]bool{
	SkillListOffered:      true,
	SkillListWanted:       true,
	SkillListAvailability: true,
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name,omitempty"`
	Location      *string  `json:"location,omitempty"`
	AvatarRef     *string  `json:"avatar,omitempty"`
	SkillsOffered []string `json:"skills_offered,omitempty"`
	SkillsWanted  []string `json:"skills_wanted,omitempty"`
	Availability  []string `json:"availability,omitempty"`
	IsPublic      *bool    `json:"is_public,omitempty"`
}

// HasName reports whether the patch carries a non-blank name
func (p *ProfilePatch) HasName() bool {
	return p.Name != nil && strings.TrimSpace(*p.Name) != ""
}

// Apply merges the set fields of the patch into u
func (p *ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.AvatarRef != nil {
		u.AvatarRef = *p.AvatarRef
	}
	if p.SkillsOffered != nil {
		u.SkillsOffered = append([]string(nil), p.SkillsOffered...)
	}
	if p.SkillsWanted != nil {
		u.SkillsWanted = append([]string(nil), p.SkillsWanted...)
	}
	if p.Availability != nil {
		u.Availability = append([]string(nil), p.Availability...)
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
}

// Clone returns a deep copy so callers never share list backing arrays
func (u User) Clone() User {
	u.SkillsOffered = cloneLabels(u.SkillsOffered)
	u.SkillsWanted = cloneLabels(u.SkillsWanted)
	u.Availability = cloneLabels(u.Availability)
	return u
}

// AddSkillOffered appends a trimmed skill label. Blank labels are ignored.
func (u *User) AddSkillOffered(skill string) bool {
	return appendLabel(&u.SkillsOffered, skill)
}

// RemoveSkillOffered drops every offered skill exactly equal to skill
func (u *User) RemoveSkillOffered(skill string) bool {
	return removeLabel(&u.SkillsOffered, skill)
}

func (u *User) AddSkillWanted(skill string) bool {
	return appendLabel(&u.SkillsWanted, skill)
}

func (u *User) RemoveSkillWanted(skill string) bool {
	return removeLabel(&u.SkillsWanted, skill)
}

func (u *User) AddAvailability(slot string) bool {
	return appendLabel(&u.Availability, slot)
}

func (u *User) RemoveAvailability(slot string) bool {
	return removeLabel(&u.Availability, slot)
}

// AddLabel appends to the named collection
func (u *User) AddLabel(list SkillList, label string) bool {
	switch list {
	case SkillListOffered:
		return u.AddSkillOffered(label)
	case SkillListWanted:
		return u.AddSkillWanted(label)
	case SkillListAvailability:
		return u.AddAvailability(label)
	}
	return false
}

// RemoveLabel removes from the named collection
func (u *User) RemoveLabel(list SkillList, label string) bool {
	switch list {
	case SkillListOffered:
		return u.RemoveSkillOffered(label)
	case SkillListWanted:
		return u.RemoveSkillWanted(label)
	case SkillListAvailability:
		return u.RemoveAvailability(label)
	}
	return false
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// name or of any offered or wanted skill. An empty query matches everything.
func (u *User) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(u.Name), q) {
		return true
	}
	for _, s := range u.SkillsOffered {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, s := range u.SkillsWanted {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func appendLabel(labels *[]string, label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	*labels = append(*labels, label)
	return true
}

func removeLabel(labels *[]string, label string) bool {
	kept := (*labels)[:0:0]
	for _, l := range *labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(*labels)
	*labels = kept
	return removed
}

func cloneLabels(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return append(make([]string, 0, len(labels)), labels...)
}

// UserCSV represents a profile record from CSV import. A nil optional field
// means the column (or JSON key) was absent and the stored value is kept.
type UserCSV struct {
	ID            string  `csv:"id"`
	Name          string  `csv:"name"`
	Location      *string `csv:"location"`
	SkillsOffered *string `csv:"skills_offered"` // semicolon separated
	SkillsWanted  *string `csv:"skills_wanted"`  // semicolon separated
	Availability  *string `csv:"availability"`   // semicolon separated
	IsPublic      *string `csv:"is_public"`      // CSV uses string "true"/"false"
}
