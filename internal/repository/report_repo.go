package repository

import (
	"sync"

	"github.com/skillswap-api/internal/models"
)

// reportRepo holds seeded reported skills. Moderation actions only acknowledge
// reports, so nothing here mutates after seeding.
type reportRepo struct {
	mu      sync.RWMutex
	reports []models.ReportedSkill
}

// NewReportRepo creates an empty report store
func NewReportRepo() ReportRepository {
	return &reportRepo{}
}

func (r *reportRepo) List() []models.ReportedSkill {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ReportedSkill{}, r.reports...)
}

func (r *reportRepo) GetByID(id string) *models.ReportedSkill {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			report := r.reports[i]
			return &report
		}
	}
	return nil
}

func (r *reportRepo) CountByStatus(status models.ReportStatus) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rep := range r.reports {
		if rep.Status == status {
			count++
		}
	}
	return count
}

func (r *reportRepo) Seed(reports []models.ReportedSkill) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = make([]models.ReportedSkill, 0, len(reports))
	for _, rep := range reports {
		if rep.Status == "" {
			rep.Status = models.ReportStatusPending
		}
		r.reports = append(r.reports, rep)
	}
}
