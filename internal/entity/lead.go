package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrEmailAlreadyExists = errors.New("a lead with this email already exists")
)

// LeadInputs are the raw numbers the visitor typed into the ROI calculator.
// Every field is optional: a nil field on a repeat submission leaves the
// stored value untouched.
type LeadInputs struct {
	Hours        *float64 `json:"hours,omitempty"`
	HourlyWage   *float64 `json:"hourly_wage,omitempty"`
	Employees    *float64 `json:"employees,omitempty"`
	WeeksPerYear *float64 `json:"weeks_per_year,omitempty"`
}

func (i LeadInputs) IsEmpty() bool {
	return i.Hours == nil && i.HourlyWage == nil && i.Employees == nil && i.WeeksPerYear == nil
}

// LeadResults are the outcomes the calculator derived from the inputs.
type LeadResults struct {
	TimeSaved        *float64 `json:"time_saved,omitempty"`
	CostSaved        *float64 `json:"cost_saved,omitempty"`
	ProductivityGain *float64 `json:"productivity_gain,omitempty"`
}

func (r LeadResults) IsEmpty() bool {
	return r.TimeSaved == nil && r.CostSaved == nil && r.ProductivityGain == nil
}

// Lead is one prospective customer, keyed by email. Repeat submissions for
// the same email merge into the same record; CreatedAt never changes after
// the first one. Email is matched byte-exact, normalization is the caller's
// problem.
type Lead struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Inputs    LeadInputs  `json:"inputs"`
	Results   LeadResults `json:"results"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewLead(email string, inputs LeadInputs, results LeadResults) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Inputs:    inputs,
		Results:   results,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FirstSeen reports whether the stored record came out of the create branch
// of the upsert. Merges bump updated_at, never created_at.
func (l *Lead) FirstSeen() bool {
	return l.UpdatedAt.Equal(l.CreatedAt)
}

type LeadRepositoryInterface interface {
	// Upsert creates the record or merges the non-nil fields into the
	// existing one, atomically, and loads the stored state back into lead.
	Upsert(ctx context.Context, lead *Lead) error

	FindByEmail(ctx context.Context, email string) (*Lead, error)

	// List returns every lead, most recent activity first.
	List(ctx context.Context) ([]Lead, error)
}
