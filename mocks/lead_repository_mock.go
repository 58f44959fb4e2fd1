package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/models"
)

// LeadRepositoryMock is an in-memory stand-in for the mongo lead
// repository. It reproduces the repository contract, including filter
// semantics, so service tests can exercise real query behavior.
type LeadRepositoryMock struct {
	mu    sync.Mutex
	leads map[string]models.LeadModel

	LastFilters *db.LeadFilters
	LastPage    int64
	LastLimit   int64
}

func NewLeadRepositoryMock() *LeadRepositoryMock {
	return &LeadRepositoryMock{leads: map[string]models.LeadModel{}}
}

// Seed stores a lead as-is, without stamping ids or timestamps.
func (m *LeadRepositoryMock) Seed(lead models.LeadModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[lead.LeadId] = lead
}

func (m *LeadRepositoryMock) Save(ctx context.Context, lead *models.LeadModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead.Id()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := lead.Validate(); err != nil {
		return err
	}

	for _, existing := range m.leads {
		if existing.Email == lead.Email {
			return db.ErrDuplicateEmail
		}
	}

	m.leads[lead.LeadId] = *lead
	return nil
}

func (m *LeadRepositoryMock) FindOneById(ctx context.Context, id string) (*models.LeadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.leads[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &lead, nil
}

func (m *LeadRepositoryMock) Update(ctx context.Context, id string, patch *models.LeadPatch) (*models.LeadModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.leads[id]
	if !ok {
		return nil, db.ErrNotFound
	}

	patch.Apply(&lead)
	lead.UpdatedAt = time.Now().UTC()

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	for _, existing := range m.leads {
		if existing.LeadId != id && existing.Email == lead.Email {
			return nil, db.ErrDuplicateEmail
		}
	}

	m.leads[id] = lead
	return &lead, nil
}

func (m *LeadRepositoryMock) DeleteById(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.leads[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.leads, id)
	return nil
}

func (m *LeadRepositoryMock) GetLeads(ctx context.Context, filters *db.LeadFilters, page, limit int64) ([]models.LeadModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFilters = filters
	m.LastPage = page
	m.LastLimit = limit

	matched := []models.LeadModel{}
	for _, lead := range m.leads {
		if matchesFilters(lead, filters) {
			matched = append(matched, lead)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return []models.LeadModel{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesFilters(lead models.LeadModel, f *db.LeadFilters) bool {
	if f == nil {
		return true
	}

	if !containsFold(lead.Company, f.Company) ||
		!containsFold(lead.City, f.City) ||
		!containsFold(lead.State, f.State) {
		return false
	}

	if len(f.Status) > 0 && !inList(f.Status, lead.Status) {
		return false
	}
	if len(f.Source) > 0 && !inList(f.Source, lead.Source) {
		return false
	}

	if f.ScoreMin != nil && (lead.Score == nil || *lead.Score < *f.ScoreMin) {
		return false
	}
	if f.ScoreMax != nil && (lead.Score == nil || *lead.Score > *f.ScoreMax) {
		return false
	}

	if f.LeadValueMin != nil && (lead.LeadValue == nil || *lead.LeadValue < *f.LeadValueMin) {
		return false
	}
	if f.LeadValueMax != nil && (lead.LeadValue == nil || *lead.LeadValue > *f.LeadValueMax) {
		return false
	}

	if f.IsQualified != nil && lead.IsQualified != *f.IsQualified {
		return false
	}

	if f.CreatedFrom != nil && lead.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && lead.CreatedAt.After(db.EndOfDay(*f.CreatedTo)) {
		return false
	}

	if f.LastActivityFrom != nil && (lead.LastActivityAt == nil || lead.LastActivityAt.Before(*f.LastActivityFrom)) {
		return false
	}
	if f.LastActivityTo != nil && (lead.LastActivityAt == nil || lead.LastActivityAt.After(db.EndOfDay(*f.LastActivityTo))) {
		return false
	}

	return true
}

func containsFold(value, substring string) bool {
	if substring == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substring))
}

func inList(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
