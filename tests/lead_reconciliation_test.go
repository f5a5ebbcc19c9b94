package tests

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/roi-leads/internal/entity"
	"github.com/xavierca1/roi-leads/internal/usecase"
)

// memLeadStore implements the repository contract in memory with the same
// semantics as the SQL upsert: one atomic create-or-merge per call, COALESCE
// per field, created_at written once. It stands in for Postgres so the
// reconciliation behavior can be exercised end to end, including under
// concurrency.
type memLeadStore struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newMemLeadStore() *memLeadStore {
	return &memLeadStore{leads: make(map[string]*entity.Lead)}
}

func coalesce(incoming, existing *float64) *float64 {
	if incoming != nil {
		return incoming
	}
	return existing
}

func (s *memLeadStore) Upsert(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.leads[lead.Email]
	if !ok {
		stored := *lead
		s.leads[lead.Email] = &stored
		return nil
	}

	existing.Inputs.Hours = coalesce(lead.Inputs.Hours, existing.Inputs.Hours)
	existing.Inputs.HourlyWage = coalesce(lead.Inputs.HourlyWage, existing.Inputs.HourlyWage)
	existing.Inputs.Employees = coalesce(lead.Inputs.Employees, existing.Inputs.Employees)
	existing.Inputs.WeeksPerYear = coalesce(lead.Inputs.WeeksPerYear, existing.Inputs.WeeksPerYear)
	existing.Results.TimeSaved = coalesce(lead.Results.TimeSaved, existing.Results.TimeSaved)
	existing.Results.CostSaved = coalesce(lead.Results.CostSaved, existing.Results.CostSaved)
	existing.Results.ProductivityGain = coalesce(lead.Results.ProductivityGain, existing.Results.ProductivityGain)
	existing.UpdatedAt = lead.UpdatedAt

	*lead = *existing
	return nil
}

func (s *memLeadStore) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[email]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	found := *lead
	return &found, nil
}

func (s *memLeadStore) List(ctx context.Context) ([]entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := make([]entity.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		leads = append(leads, *lead)
	}
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].UpdatedAt.After(leads[j].UpdatedAt)
	})
	return leads, nil
}

// ============ RECONCILIATION PROPERTIES ============

func TestResubmissionMergesIntoOneRecord(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()
	uc := usecase.NewSubmitLeadUseCase(store, nil)

	first, err := uc.Execute(ctx, submission("ana@example.com"))
	assert.NoError(t, err)

	second, err := uc.Execute(ctx, submission("ana@example.com"))
	assert.NoError(t, err)

	leads, _ := store.List(ctx)
	assert.Len(t, leads, 1)

	// Same record, first-seen creation time preserved
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestPartialResubmissionLeavesOtherFieldsUntouched(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()
	uc := usecase.NewSubmitLeadUseCase(store, nil)

	_, err := uc.Execute(ctx, usecase.SubmitLeadInput{
		Email:   "ana@example.com",
		Inputs:  entity.LeadInputs{Hours: f(5), HourlyWage: f(30)},
		Results: entity.LeadResults{TimeSaved: f(10)},
	})
	assert.NoError(t, err)

	// Second submission only carries hours; wage must survive the merge.
	merged, err := uc.Execute(ctx, usecase.SubmitLeadInput{
		Email:   "ana@example.com",
		Inputs:  entity.LeadInputs{Hours: f(8)},
		Results: entity.LeadResults{TimeSaved: f(16)},
	})
	assert.NoError(t, err)

	assert.Equal(t, 8.0, *merged.Inputs.Hours)
	assert.Equal(t, 30.0, *merged.Inputs.HourlyWage)
	assert.Equal(t, 16.0, *merged.Results.TimeSaved)
	assert.Nil(t, merged.Results.CostSaved)
}

func TestConcurrentSubmissionsSameEmailConverge(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()
	uc := usecase.NewSubmitLeadUseCase(store, nil)

	const submitters = 50

	var wg sync.WaitGroup
	wg.Add(submitters)
	errs := make(chan error, submitters)

	for i := 0; i < submitters; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := uc.Execute(ctx, usecase.SubmitLeadInput{
				Email:   "race@example.com",
				Inputs:  entity.LeadInputs{Hours: f(float64(n))},
				Results: entity.LeadResults{CostSaved: f(float64(n * 100))},
			})
			errs <- err
		}(i)
	}

	wg.Wait()
	close(errs)

	// No submitter ever sees a duplicate-key failure
	for err := range errs {
		assert.NoError(t, err)
	}

	// Exactly one record afterwards, fields from whichever upsert landed last
	leads, _ := store.List(ctx)
	assert.Len(t, leads, 1)
	assert.Equal(t, "race@example.com", leads[0].Email)
	assert.NotNil(t, leads[0].Inputs.Hours)
}

func TestConcurrentSubmissionsDistinctEmailsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()
	uc := usecase.NewSubmitLeadUseCase(store, nil)

	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}

	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := uc.Execute(ctx, submission(email))
			assert.NoError(t, err)
		}(email)
	}
	wg.Wait()

	leads, _ := store.List(ctx)
	assert.Len(t, leads, len(emails))
}

func TestListOrdersByMostRecentActivity(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()

	t1 := time.Now().Add(-3 * time.Hour).UTC()
	t2 := time.Now().Add(-2 * time.Hour).UTC()
	t3 := time.Now().Add(-1 * time.Hour).UTC()

	leadAt := func(email string, ts time.Time) *entity.Lead {
		lead := entity.NewLead(email, entity.LeadInputs{Hours: f(1)}, entity.LeadResults{TimeSaved: f(1)})
		lead.CreatedAt = ts
		lead.UpdatedAt = ts
		return lead
	}

	// A at t1, B at t2, then A resubmits at t3
	assert.NoError(t, store.Upsert(ctx, leadAt("a@example.com", t1)))
	assert.NoError(t, store.Upsert(ctx, leadAt("b@example.com", t2)))
	assert.NoError(t, store.Upsert(ctx, leadAt("a@example.com", t3)))

	uc := usecase.NewListLeadsUseCase(store)
	leads, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	// A was touched last, so it comes first even though B was created later
	assert.Equal(t, "a@example.com", leads[0].Email)
	assert.Equal(t, "b@example.com", leads[1].Email)
	assert.Equal(t, t1, leads[0].CreatedAt)
}

func TestEmailMatchingIsExact(t *testing.T) {
	ctx := context.Background()
	store := newMemLeadStore()
	uc := usecase.NewSubmitLeadUseCase(store, nil)

	_, err := uc.Execute(ctx, submission("Ana@Example.com"))
	assert.NoError(t, err)
	_, err = uc.Execute(ctx, submission("ana@example.com"))
	assert.NoError(t, err)

	// Case-normalization is the caller's policy, not the store's
	leads, _ := store.List(ctx)
	assert.Len(t, leads, 2)
}
