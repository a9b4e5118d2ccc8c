// Package matching computes which skills two users can trade.
//
// All functions are pure: they read the given users and never retain them.
// Skill membership is exact string equality.
package matching

import (
	"github.com/skillswap-api/internal/models"
)

// Match is the set of choices available when from proposes a swap to to
type Match struct {
	FromUserID  string   `json:"from_user_id"`
	ToUserID    string   `json:"to_user_id"`
	Offerable   []string `json:"offerable"`
	Requestable []string `json:"requestable"`
	CanRequest  bool     `json:"can_request"`
}

// OfferableSkills returns the skills from can teach that to wants, in
// from.SkillsOffered order.
func OfferableSkills(from, to *models.User) []string {
	return intersect(from.SkillsOffered, to.SkillsWanted)
}

// RequestableSkills returns the skills to can teach that from wants, in
// to.SkillsOffered order.
func RequestableSkills(from, to *models.User) []string {
	return intersect(to.SkillsOffered, from.SkillsWanted)
}

// CanRequest reports whether from has at least one skill to wants
func CanRequest(from, to *models.User) bool {
	wanted := toSet(to.SkillsWanted)
	for _, s := range from.SkillsOffered {
		if wanted[s] {
			return true
		}
	}
	return false
}

// Compute builds the full match between from and to
func Compute(from, to *models.User) Match {
	offerable := OfferableSkills(from, to)
	return Match{
		FromUserID:  from.ID,
		ToUserID:    to.ID,
		Offerable:   offerable,
		Requestable: RequestableSkills(from, to),
		CanRequest:  len(offerable) > 0,
	}
}

// Contains reports whether skill is one of candidates
func Contains(candidates []string, skill string) bool {
	for _, c := range candidates {
		if c == skill {
			return true
		}
	}
	return false
}

// intersect keeps the entries of ordered that appear in filter. Duplicates in
// ordered are kept as they appear.
func intersect(ordered, filter []string) []string {
	set := toSet(filter)
	out := make([]string, 0, len(ordered))
	for _, s := range ordered {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
