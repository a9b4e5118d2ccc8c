package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillswap-api/internal/models"
)

// swapRepo is the in-memory implementation of SwapRepository
type swapRepo struct {
	mu       sync.RWMutex
	requests []*models.SwapRequest
	now      func() time.Time
}

// NewSwapRepo creates an empty swap request ledger
func NewSwapRepo() SwapRepository {
	return &swapRepo{now: time.Now}
}

// Create appends a new pending request. Skill membership is the caller's job.
func (r *swapRepo) Create(fromUserID, toUserID, skillOffered, skillRequested, message string) models.SwapRequest {
	now := r.now().UTC()
	req := &models.SwapRequest{
		ID:             uuid.New().String(),
		FromUserID:     fromUserID,
		ToUserID:       toUserID,
		SkillOffered:   skillOffered,
		SkillRequested: skillRequested,
		Message:        message,
		Status:         models.SwapStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for r.find(req.ID) >= 0 {
		req.ID = uuid.New().String()
	}
	r.requests = append(r.requests, req)
	return *req
}

// SetStatus moves a request to accepted or rejected. Resolved requests are
// overwritten as well.
func (r *swapRepo) SetStatus(id string, status models.SwapStatus) bool {
	if !models.ResponseStatuses[status] {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.find(id)
	if pos < 0 {
		return false
	}
	r.requests[pos].Status = status
	r.requests[pos].UpdatedAt = r.now().UTC()
	return true
}

// SetStatusIf moves a request to `to` only while it is still in `from`. The
// check and the write happen under one lock.
func (r *swapRepo) SetStatusIf(id string, from, to models.SwapStatus) (models.SwapRequest, bool) {
	if !models.ResponseStatuses[to] {
		return models.SwapRequest{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.find(id)
	if pos < 0 || r.requests[pos].Status != from {
		return models.SwapRequest{}, false
	}
	r.requests[pos].Status = to
	r.requests[pos].UpdatedAt = r.now().UTC()
	return *r.requests[pos], true
}

// RemoveIf deletes a request when pred accepts its current state
func (r *swapRepo) RemoveIf(id string, pred func(models.SwapRequest) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.find(id)
	if pos < 0 || !pred(*r.requests[pos]) {
		return false
	}
	r.requests = append(r.requests[:pos], r.requests[pos+1:]...)
	return true
}

// Remove deletes a request regardless of owner or status
func (r *swapRepo) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := r.find(id)
	if pos < 0 {
		return false
	}
	r.requests = append(r.requests[:pos], r.requests[pos+1:]...)
	return true
}

// GetByID retrieves a copy of a request, nil if unknown
func (r *swapRepo) GetByID(id string) *models.SwapRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos := r.find(id)
	if pos < 0 {
		return nil
	}
	req := *r.requests[pos]
	return &req
}

// ListAll returns every request in creation order
func (r *swapRepo) ListAll() []models.SwapRequest {
	return r.filter(func(*models.SwapRequest) bool { return true })
}

// ListByUser returns requests sent or received by userID
func (r *swapRepo) ListByUser(userID string) []models.SwapRequest {
	return r.filter(func(req *models.SwapRequest) bool { return req.Involves(userID) })
}

// CountByStatus returns the number of requests in status
func (r *swapRepo) CountByStatus(status models.SwapStatus) int {
	return len(r.filter(func(req *models.SwapRequest) bool { return req.Status == status }))
}

// Seed replaces the ledger contents
func (r *swapRepo) Seed(requests []models.SwapRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = make([]*models.SwapRequest, 0, len(requests))
	for i := range requests {
		req := requests[i]
		if req.ID == "" {
			req.ID = uuid.New().String()
		}
		if req.Status == "" {
			req.Status = models.SwapStatusPending
		}
		if r.find(req.ID) >= 0 {
			continue
		}
		r.requests = append(r.requests, &req)
	}
}

// StreamAll walks a snapshot of the ledger in order
func (r *swapRepo) StreamAll(ctx context.Context, callback func(*models.SwapRequest) error) error {
	for _, req := range r.ListAll() {
		if err := ctx.Err(); err != nil {
			return err
		}
		req := req
		if err := callback(&req); err != nil {
			return err
		}
	}
	return nil
}

func (r *swapRepo) filter(keep func(*models.SwapRequest) bool) []models.SwapRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.SwapRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

// find must be called with the lock held
func (r *swapRepo) find(id string) int {
	for i, req := range r.requests {
		if req.ID == id {
			return i
		}
	}
	return -1
}
