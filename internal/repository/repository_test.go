package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func seededUsers() repository.UserRepository {
	repo := repository.NewUserRepo(repository.Options{})
	repo.Seed([]models.User{
		{ID: "1", Name: "Sarah Chen", SkillsOffered: []string{"Photoshop", "UI/UX Design", "Figma"}, SkillsWanted: []string{"Python", "Data Analysis"}, IsPublic: true},
		{ID: "2", Name: "Marcus Johnson", SkillsOffered: []string{"Python", "Machine Learning", "Excel"}, SkillsWanted: []string{"Guitar", "Spanish"}, IsPublic: true},
		{ID: "3", Name: "Elena Rodriguez", SkillsOffered: []string{"Spanish", "Cooking", "Photography"}, SkillsWanted: []string{"Web Development", "Marketing"}, IsPublic: true},
		{ID: "4", Name: "Hidden Person", SkillsOffered: []string{"Python"}, IsPublic: false},
	})
	return repo
}

func ids(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestUserRepo_ListPublic(t *testing.T) {
	repo := seededUsers()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query lists every public user", "", []string{"1", "2", "3"}},
		{"name match is case insensitive", "sarah", []string{"1"}},
		{"offered skill match", "PYTHON", []string{"1", "2"}},
		{"wanted skill match", "marketing", []string{"3"}},
		{"substring match", "pho", []string{"1", "3"}},
		{"no match", "underwater basket weaving", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(repo.ListPublic(tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ListPublic(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestUserRepo_ListPublicNeverReturnsPrivate(t *testing.T) {
	repo := seededUsers()
	for _, q := range []string{"", "python", "hidden", "p"} {
		for _, u := range repo.ListPublic(q) {
			if !u.IsPublic {
				t.Errorf("ListPublic(%q) returned private user %s", q, u.ID)
			}
		}
	}
}

func TestUserRepo_ListPublicKeepsBannedUnlessHidden(t *testing.T) {
	repo := seededUsers()
	repo.Ban("2")
	if got := ids(repo.ListPublic("marcus")); len(got) != 1 {
		t.Errorf("banned public user should still be listed by default, got %v", got)
	}

	hiding := repository.NewUserRepo(repository.Options{HideBanned: true})
	hiding.Seed(repo.List())
	if got := ids(hiding.ListPublic("marcus")); len(got) != 0 {
		t.Errorf("banned user should be hidden, got %v", got)
	}
}

func TestUserRepo_UpsertEmptyNameIsNoop(t *testing.T) {
	repo := seededUsers()
	before := repo.List()

	patches := []*models.ProfilePatch{
		nil,
		{ID: "1"},
		{ID: "1", Name: strPtr(""), Location: strPtr("Mars")},
		{ID: "new", Name: strPtr("   ")},
	}
	for _, p := range patches {
		if _, ok := repo.Upsert(p); ok {
			t.Errorf("Upsert(%+v) should not commit", p)
		}
	}

	if diff := cmp.Diff(before, repo.List()); diff != "" {
		t.Errorf("directory changed (-before +after):\n%s", diff)
	}
}

func TestUserRepo_UpsertExistingUpdatesInPlace(t *testing.T) {
	repo := seededUsers()
	count := repo.Count()

	u, ok := repo.Upsert(&models.ProfilePatch{ID: "2", Name: strPtr("Marcus J."), Location: strPtr("Boston, MA")})
	if !ok {
		t.Fatal("expected upsert to commit")
	}
	if repo.Count() != count {
		t.Errorf("expected %d users, got %d", count, repo.Count())
	}
	if u.Name != "Marcus J." || u.Location != "Boston, MA" {
		t.Errorf("fields not merged: %+v", u)
	}
	// untouched fields survive the merge
	if diff := cmp.Diff([]string{"Python", "Machine Learning", "Excel"}, u.SkillsOffered); diff != "" {
		t.Errorf("skills changed (-want +got):\n%s", diff)
	}
	if got := ids(repo.List()); got[1] != "2" {
		t.Errorf("position changed: %v", got)
	}
}

func TestUserRepo_UpsertNewAppends(t *testing.T) {
	repo := seededUsers()
	count := repo.Count()

	u, ok := repo.Upsert(&models.ProfilePatch{
		ID:            "current-user",
		Name:          strPtr("  Dana  "),
		SkillsOffered: []string{"Yoga"},
	})
	if !ok {
		t.Fatal("expected upsert to commit")
	}
	if repo.Count() != count+1 {
		t.Errorf("expected %d users, got %d", count+1, repo.Count())
	}
	if u.Name != "Dana" {
		t.Errorf("expected trimmed name, got %q", u.Name)
	}
	if !u.IsPublic {
		t.Error("new profiles default to public")
	}
	if u.JoinedAt.IsZero() {
		t.Error("expected join date")
	}
	all := repo.List()
	if all[len(all)-1].ID != "current-user" {
		t.Error("new user should be appended last")
	}

	generated, ok := repo.Upsert(&models.ProfilePatch{Name: strPtr("No Id"), IsPublic: boolPtr(false)})
	if !ok || generated.ID == "" {
		t.Errorf("expected generated id, got %+v", generated)
	}
	if generated.IsPublic {
		t.Error("is_public from patch should win over default")
	}
}

func TestUserRepo_BanAndUpdate(t *testing.T) {
	repo := seededUsers()

	if repo.Ban("missing") {
		t.Error("ban of unknown user should report false")
	}
	if !repo.Ban("3") {
		t.Fatal("ban should apply")
	}
	if !repo.GetByID("3").IsBanned {
		t.Error("user should be banned")
	}
	if repo.CountBanned() != 1 {
		t.Errorf("expected 1 banned, got %d", repo.CountBanned())
	}

	u, ok := repo.Update("1", func(u *models.User) bool { return u.AddSkillWanted(" Go ") })
	if !ok {
		t.Fatal("update should apply")
	}
	if u.SkillsWanted[len(u.SkillsWanted)-1] != "Go" {
		t.Errorf("expected Go appended, got %v", u.SkillsWanted)
	}
}

func TestUserRepo_ReturnedUsersAreCopies(t *testing.T) {
	repo := seededUsers()

	u := repo.GetByID("1")
	u.SkillsOffered[0] = "mutated"
	u.Name = "mutated"

	if repo.GetByID("1").SkillsOffered[0] != "Photoshop" {
		t.Error("caller mutation leaked into directory")
	}
	if repo.GetByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestUserRepo_StreamAll(t *testing.T) {
	repo := seededUsers()

	var names []string
	err := repo.StreamAll(context.Background(), func(u *models.User) error {
		names = append(names, u.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamAll failed: %v", err)
	}
	if len(names) != 4 || !strings.HasPrefix(names[0], "Sarah") {
		t.Errorf("unexpected stream order: %v", names)
	}

	stop := errors.New("stop")
	err = repo.StreamAll(context.Background(), func(u *models.User) error { return stop })
	if !errors.Is(err, stop) {
		t.Errorf("expected callback error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.StreamAll(ctx, func(*models.User) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSwapRepo_CreateIsPendingWithUniqueID(t *testing.T) {
	repo := repository.NewSwapRepo()
	repo.Seed([]models.SwapRequest{{ID: "1", FromUserID: "1", ToUserID: "2", Status: models.SwapStatusAccepted}})

	seen := map[string]bool{"1": true}
	for i := 0; i < 50; i++ {
		req := repo.Create("a", "b", "Photoshop", "Python", "hi")
		if req.Status != models.SwapStatusPending {
			t.Fatalf("expected pending, got %s", req.Status)
		}
		if seen[req.ID] {
			t.Fatalf("duplicate id %s", req.ID)
		}
		seen[req.ID] = true
	}
	if len(repo.ListAll()) != 51 {
		t.Errorf("expected 51 requests, got %d", len(repo.ListAll()))
	}
}

func TestSwapRepo_SetStatus(t *testing.T) {
	repo := repository.NewSwapRepo()
	first := repo.Create("a", "b", "Photoshop", "Python", "hi")
	second := repo.Create("c", "d", "Guitar", "Yoga", "")

	if !repo.SetStatus(first.ID, models.SwapStatusAccepted) {
		t.Fatal("SetStatus should apply")
	}

	all := repo.ListAll()
	got := all[0]
	want := first
	want.Status = models.SwapStatusAccepted
	want.UpdatedAt = got.UpdatedAt
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("only status should change (-want +got):\n%s", diff)
	}
	if all[1].Status != models.SwapStatusPending || all[1].ID != second.ID {
		t.Errorf("other entry changed: %+v", all[1])
	}

	if repo.SetStatus("missing", models.SwapStatusRejected) {
		t.Error("unknown id should report false")
	}
	if repo.SetStatus(second.ID, models.SwapStatusPending) {
		t.Error("pending is not a response status")
	}
	if repo.SetStatus(second.ID, "cancelled") {
		t.Error("cancelled is not a response status")
	}
	// overwriting a resolved request is permitted
	if !repo.SetStatus(first.ID, models.SwapStatusRejected) {
		t.Error("overwrite should apply")
	}
	if repo.GetByID(first.ID).Status != models.SwapStatusRejected {
		t.Error("expected rejected after overwrite")
	}
}

func TestSwapRepo_Remove(t *testing.T) {
	repo := repository.NewSwapRepo()
	a := repo.Create("a", "b", "x", "y", "")
	b := repo.Create("b", "a", "y", "x", "")
	c := repo.Create("a", "c", "x", "z", "")

	if repo.Remove("missing") {
		t.Error("unknown id should report false")
	}
	if len(repo.ListAll()) != 3 {
		t.Error("remove of unknown id changed the ledger")
	}

	if !repo.Remove(b.ID) {
		t.Fatal("remove should apply")
	}
	for _, req := range repo.ListAll() {
		if req.ID == b.ID {
			t.Error("removed id still listed")
		}
	}
	if got := []string{repo.ListAll()[0].ID, repo.ListAll()[1].ID}; got[0] != a.ID || got[1] != c.ID {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestSwapRepo_ConditionalWrites(t *testing.T) {
	repo := repository.NewSwapRepo()
	req := repo.Create("a", "b", "x", "y", "")

	updated, ok := repo.SetStatusIf(req.ID, models.SwapStatusPending, models.SwapStatusAccepted)
	if !ok || updated.Status != models.SwapStatusAccepted {
		t.Fatalf("first transition should apply, got %+v %v", updated, ok)
	}
	if _, ok := repo.SetStatusIf(req.ID, models.SwapStatusPending, models.SwapStatusRejected); ok {
		t.Error("resolved request must not be answered again")
	}
	if repo.GetByID(req.ID).Status != models.SwapStatusAccepted {
		t.Error("status changed by a refused transition")
	}
	if _, ok := repo.SetStatusIf("missing", models.SwapStatusPending, models.SwapStatusAccepted); ok {
		t.Error("unknown id should report false")
	}

	pending := func(r models.SwapRequest) bool { return r.Status == models.SwapStatusPending }
	if repo.RemoveIf(req.ID, pending) {
		t.Error("accepted request must not be removed")
	}
	other := repo.Create("b", "a", "y", "x", "")
	if !repo.RemoveIf(other.ID, pending) {
		t.Error("pending request should be removed")
	}
	if got := len(repo.ListAll()); got != 1 {
		t.Errorf("expected 1 request left, got %d", got)
	}
}

func TestSwapRepo_ListByUser(t *testing.T) {
	repo := repository.NewSwapRepo()
	repo.Create("a", "b", "x", "y", "")
	repo.Create("c", "d", "x", "y", "")
	repo.Create("b", "c", "x", "y", "")

	if got := len(repo.ListByUser("b")); got != 2 {
		t.Errorf("expected 2 requests for b, got %d", got)
	}
	if got := len(repo.ListByUser("z")); got != 0 {
		t.Errorf("expected none for z, got %d", got)
	}
	if got := repo.CountByStatus(models.SwapStatusPending); got != 3 {
		t.Errorf("expected 3 pending, got %d", got)
	}
}

func TestReportRepo(t *testing.T) {
	repo := repository.NewReportRepo()
	repo.Seed([]models.ReportedSkill{
		{ID: "1", UserID: "3", Skill: "Make money fast online", Type: models.SkillListOffered, ReportReason: "Spam"},
		{ID: "2", UserID: "4", Skill: "Chess", Type: models.SkillListWanted, Status: models.ReportStatusApproved},
	})

	if got := repo.CountByStatus(models.ReportStatusPending); got != 1 {
		t.Errorf("expected 1 pending report, got %d", got)
	}
	if repo.GetByID("1") == nil || repo.GetByID("9") != nil {
		t.Error("GetByID lookup failed")
	}
	list := repo.List()
	list[0].Skill = "changed"
	if repo.GetByID("1").Skill == "changed" {
		t.Error("List should return a copy")
	}
}
