package matching

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skillswap-api/internal/models"
)

func TestOfferableAndRequestable(t *testing.T) {
	tests := []struct {
		name            string
		from            models.User
		to              models.User
		wantOfferable   []string
		wantRequestable []string
	}{
		{
			name:            "mutual single skill",
			from:            models.User{ID: "a", SkillsOffered: []string{"Photoshop"}, SkillsWanted: []string{"Python"}},
			to:              models.User{ID: "b", SkillsOffered: []string{"Python"}, SkillsWanted: []string{"Photoshop"}},
			wantOfferable:   []string{"Photoshop"},
			wantRequestable: []string{"Python"},
		},
		{
			name:            "no overlap",
			from:            models.User{ID: "c", SkillsOffered: []string{"Guitar"}, SkillsWanted: []string{"Yoga"}},
			to:              models.User{ID: "d", SkillsOffered: []string{"Cooking"}, SkillsWanted: []string{"Chess"}},
			wantOfferable:   []string{},
			wantRequestable: []string{},
		},
		{
			name: "order follows the teaching side",
			from: models.User{SkillsOffered: []string{"Figma", "Excel", "Spanish"}, SkillsWanted: []string{"Guitar", "Cooking"}},
			to: models.User{
				SkillsOffered: []string{"Cooking", "Yoga", "Guitar"},
				SkillsWanted:  []string{"Spanish", "Figma"},
			},
			wantOfferable:   []string{"Figma", "Spanish"},
			wantRequestable: []string{"Cooking", "Guitar"},
		},
		{
			name:            "exact match only",
			from:            models.User{SkillsOffered: []string{"python"}, SkillsWanted: []string{"photoshop"}},
			to:              models.User{SkillsOffered: []string{"Photoshop"}, SkillsWanted: []string{"Python"}},
			wantOfferable:   []string{},
			wantRequestable: []string{},
		},
		{
			name:            "empty lists",
			from:            models.User{},
			to:              models.User{SkillsWanted: []string{"Python"}},
			wantOfferable:   []string{},
			wantRequestable: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offerable := OfferableSkills(&tt.from, &tt.to)
			if diff := cmp.Diff(tt.wantOfferable, offerable); diff != "" {
				t.Errorf("OfferableSkills mismatch (-want +got):\n%s", diff)
			}
			requestable := RequestableSkills(&tt.from, &tt.to)
			if diff := cmp.Diff(tt.wantRequestable, requestable); diff != "" {
				t.Errorf("RequestableSkills mismatch (-want +got):\n%s", diff)
			}
			if got := CanRequest(&tt.from, &tt.to); got != (len(tt.wantOfferable) > 0) {
				t.Errorf("CanRequest = %v, want %v", got, len(tt.wantOfferable) > 0)
			}
		})
	}
}

func TestOfferableSkillsMembership(t *testing.T) {
	from := models.User{SkillsOffered: []string{"Go", "Rust", "Go", "SQL"}}
	to := models.User{SkillsWanted: []string{"SQL", "Go", "Haskell"}}

	got := OfferableSkills(&from, &to)
	if len(got) == 0 {
		t.Fatal("expected overlap")
	}
	for _, s := range got {
		if !Contains(from.SkillsOffered, s) || !Contains(to.SkillsWanted, s) {
			t.Errorf("%q does not satisfy both membership conditions", s)
		}
	}
	// duplicates in the offering list are preserved
	if diff := cmp.Diff([]string{"Go", "Go", "SQL"}, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestCompute(t *testing.T) {
	a := models.User{ID: "a", SkillsOffered: []string{"Photoshop"}, SkillsWanted: []string{"Python"}}
	b := models.User{ID: "b", SkillsOffered: []string{"Python"}, SkillsWanted: []string{"Photoshop"}}

	m := Compute(&a, &b)
	want := Match{
		FromUserID:  "a",
		ToUserID:    "b",
		Offerable:   []string{"Photoshop"},
		Requestable: []string{"Python"},
		CanRequest:  true,
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Compute mismatch (-want +got):\n%s", diff)
	}

	// the reverse direction swaps the roles
	r := Compute(&b, &a)
	if !r.CanRequest || r.Offerable[0] != "Python" || r.Requestable[0] != "Photoshop" {
		t.Errorf("unexpected reverse match: %+v", r)
	}
}

func BenchmarkCompute(b *testing.B) {
	from := models.User{}
	to := models.User{}
	for i := 0; i < 200; i++ {
		skill := "skill-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		from.SkillsOffered = append(from.SkillsOffered, skill)
		if i%3 == 0 {
			to.SkillsWanted = append(to.SkillsWanted, skill)
		}
		to.SkillsOffered = append(to.SkillsOffered, skill)
		if i%5 == 0 {
			from.SkillsWanted = append(from.SkillsWanted, skill)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Compute(&from, &to)
	}
}
