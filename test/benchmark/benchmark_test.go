package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/matching"
	"github.com/skillswap-api/internal/mocks"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/service"
	"github.com/skillswap-api/internal/validation"
)

var skills = []string{"Photoshop", "Figma", "Python", "Excel", "Go", "Guitar", "Spanish", "Cooking"}

func strPtr(s string) *string { return &s }

// populate fills the directory with n users and a pending swap between each neighbouring pair
func populate(b *testing.B, n int) *repository.Repositories {
	b.Helper()
	repos := repository.New(repository.Options{})
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = uuid.NewString()
		repos.User.Upsert(&models.ProfilePatch{
			ID:            ids[i],
			Name:          strPtr(fmt.Sprintf("Test User %06d", i)),
			SkillsOffered: []string{skills[i%len(skills)], skills[(i+1)%len(skills)]},
			SkillsWanted:  []string{skills[(i+2)%len(skills)]},
		})
	}
	for i := 1; i < n; i++ {
		repos.Swap.Create(ids[i-1], ids[i], skills[i%len(skills)], skills[(i+1)%len(skills)], "")
	}
	return repos
}

// BenchmarkStreamUsers benchmarks streaming iteration over the directory
func BenchmarkStreamUsers(b *testing.B) {
	repos := populate(b, 1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		count := 0
		repos.User.StreamAll(context.Background(), func(u *models.User) error {
			count++
			return nil
		})
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkSwapStatistics benchmarks the per-skill report over a large ledger
func BenchmarkSwapStatistics(b *testing.B) {
	repos := populate(b, 1000)
	services := service.NewServices(repos, mocks.NewMockFeed(), config.Default(), zerolog.Nop())
	admin := access.Admin("bench")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := services.Export.StreamReport(context.Background(), admin, io.Discard, models.ReportSwapStatistics, "csv"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMatching benchmarks the skill overlap computation between two profiles
func BenchmarkMatching(b *testing.B) {
	from := &models.User{SkillsOffered: skills, SkillsWanted: skills[:4]}
	to := &models.User{SkillsOffered: skills[2:], SkillsWanted: skills[3:]}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		matching.Compute(from, to)
	}
}

// BenchmarkValidation benchmarks full validation of an import row
func BenchmarkValidation(b *testing.B) {
	validator := validation.NewValidator()

	row := &models.UserCSV{
		ID:            "550e8400-e29b-41d4-a716-446655440000",
		Name:          "Test User",
		Location:      strPtr("Berlin"),
		SkillsOffered: strPtr("Photoshop;Figma"),
		SkillsWanted:  strPtr("Python"),
		Availability:  strPtr("Weekends"),
		IsPublic:      strPtr("true"),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator.ValidateImportRow(row, i)
	}
}

// BenchmarkCSVImport benchmarks a full CSV profile import
func BenchmarkCSVImport(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("id,name,location,skills_offered,skills_wanted,availability,is_public\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&buf, "%s,User %d,Berlin,Photoshop;Figma,Python,Weekends,true\n", uuid.NewString(), i)
	}
	data := buf.Bytes()
	admin := access.Admin("bench")

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		repos := repository.New(repository.Options{})
		services := service.NewServices(repos, mocks.NewMockFeed(), config.Default(), zerolog.Nop())
		if _, err := services.Import.Import(context.Background(), admin, bytes.NewReader(data), "csv"); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
