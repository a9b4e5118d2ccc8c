package mocks

import (
	"context"
	"io"

	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/matching"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/service"
)

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	SearchFunc      func(query string) []models.User
	GetFunc         func(id string) (*models.User, error)
	SaveFunc        func(patch *models.ProfilePatch) (*models.User, bool, error)
	AddSkillFunc    func(userID string, list models.SkillList, label string) (*models.User, error)
	RemoveSkillFunc func(userID string, list models.SkillList, label string) (*models.User, error)
	MatchFunc       func(fromID, toID string) (*matching.Match, error)
	Saved           []*models.ProfilePatch
}

// Verify interface compliance
var _ service.ProfileService = (*MockProfileService)(nil)

func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		Saved: make([]*models.ProfilePatch, 0),
	}
}

func (m *MockProfileService) Search(query string) []models.User {
	if m.SearchFunc != nil {
		return m.SearchFunc(query)
	}
	return []models.User{}
}

func (m *MockProfileService) Get(id string) (*models.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &models.User{ID: id}, nil
}

func (m *MockProfileService) Save(patch *models.ProfilePatch) (*models.User, bool, error) {
	m.Saved = append(m.Saved, patch)
	if m.SaveFunc != nil {
		return m.SaveFunc(patch)
	}
	if !patch.HasName() {
		return nil, false, nil
	}
	u := &models.User{ID: patch.ID}
	patch.Apply(u)
	return u, true, nil
}

func (m *MockProfileService) AddSkill(userID string, list models.SkillList, label string) (*models.User, error) {
	if m.AddSkillFunc != nil {
		return m.AddSkillFunc(userID, list, label)
	}
	u := &models.User{ID: userID}
	u.AddLabel(list, label)
	return u, nil
}

func (m *MockProfileService) RemoveSkill(userID string, list models.SkillList, label string) (*models.User, error) {
	if m.RemoveSkillFunc != nil {
		return m.RemoveSkillFunc(userID, list, label)
	}
	return &models.User{ID: userID}, nil
}

func (m *MockProfileService) Match(fromID, toID string) (*matching.Match, error) {
	if m.MatchFunc != nil {
		return m.MatchFunc(fromID, toID)
	}
	return &matching.Match{FromUserID: fromID, ToUserID: toID, Offerable: []string{}, Requestable: []string{}}, nil
}

// MockSwapService is a mock implementation of SwapService
type MockSwapService struct {
	SubmitFunc  func(actor access.Actor, sub *models.SwapSubmission) (*models.SwapRequest, error)
	RespondFunc func(actor access.Actor, id string, status models.SwapStatus) (*models.SwapRequest, error)
	DeleteFunc  func(actor access.Actor, id string) error
	GetFunc     func(id string) (*models.SwapRequest, error)
	ListFunc    func(userID string) []models.SwapRequest
	Actors      []access.Actor
}

// Verify interface compliance
var _ service.SwapService = (*MockSwapService)(nil)

func NewMockSwapService() *MockSwapService {
	return &MockSwapService{
		Actors: make([]access.Actor, 0),
	}
}

func (m *MockSwapService) Submit(actor access.Actor, sub *models.SwapSubmission) (*models.SwapRequest, error) {
	m.Actors = append(m.Actors, actor)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(actor, sub)
	}
	return &models.SwapRequest{
		ID:             "test-swap-id",
		FromUserID:     sub.FromUserID,
		ToUserID:       sub.ToUserID,
		SkillOffered:   sub.SkillOffered,
		SkillRequested: sub.SkillRequested,
		Message:        sub.Message,
		Status:         models.SwapStatusPending,
	}, nil
}

func (m *MockSwapService) Respond(actor access.Actor, id string, status models.SwapStatus) (*models.SwapRequest, error) {
	m.Actors = append(m.Actors, actor)
	if m.RespondFunc != nil {
		return m.RespondFunc(actor, id, status)
	}
	return &models.SwapRequest{ID: id, Status: status}, nil
}

func (m *MockSwapService) Delete(actor access.Actor, id string) error {
	m.Actors = append(m.Actors, actor)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(actor, id)
	}
	return nil
}

func (m *MockSwapService) Get(id string) (*models.SwapRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &models.SwapRequest{ID: id, Status: models.SwapStatusPending}, nil
}

func (m *MockSwapService) List(userID string) []models.SwapRequest {
	if m.ListFunc != nil {
		return m.ListFunc(userID)
	}
	return []models.SwapRequest{}
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamReportFunc func(ctx context.Context, actor access.Actor, w io.Writer, report models.ReportType, format string) error
	Requested        []models.ReportType
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Requested: make([]models.ReportType, 0),
	}
}

func (m *MockExportService) StreamReport(ctx context.Context, actor access.Actor, w io.Writer, report models.ReportType, format string) error {
	m.Requested = append(m.Requested, report)
	if m.StreamReportFunc != nil {
		return m.StreamReportFunc(ctx, actor, w, report, format)
	}
	_, err := w.Write([]byte("[]"))
	return err
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFunc func(ctx context.Context, actor access.Actor, r io.Reader, format string) (*models.ImportResult, error)
	Payloads   []string
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{
		Payloads: make([]string, 0),
	}
}

func (m *MockImportService) Import(ctx context.Context, actor access.Actor, r io.Reader, format string) (*models.ImportResult, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, actor, r, format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.Payloads = append(m.Payloads, string(data))
	return &models.ImportResult{TotalRecords: 1, SuccessfulCount: 1}, nil
}
