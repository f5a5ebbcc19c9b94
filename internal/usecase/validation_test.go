package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/roi-leads/internal/entity"
)

func f(v float64) *float64 { return &v }

func validInput() SubmitLeadInput {
	return SubmitLeadInput{
		Email:   "ana@example.com",
		Inputs:  entity.LeadInputs{Hours: f(5), HourlyWage: f(30)},
		Results: entity.LeadResults{TimeSaved: f(10), CostSaved: f(300)},
	}
}

func TestValidateSubmitLeadInput(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*SubmitLeadInput)
		missingFields []string
	}{
		{
			name:   "valid submission",
			mutate: func(i *SubmitLeadInput) {},
		},
		{
			name:          "missing email",
			mutate:        func(i *SubmitLeadInput) { i.Email = "" },
			missingFields: []string{"email"},
		},
		{
			name:          "blank email",
			mutate:        func(i *SubmitLeadInput) { i.Email = "   " },
			missingFields: []string{"email"},
		},
		{
			name:          "empty inputs",
			mutate:        func(i *SubmitLeadInput) { i.Inputs = entity.LeadInputs{} },
			missingFields: []string{"inputs"},
		},
		{
			name:          "empty results",
			mutate:        func(i *SubmitLeadInput) { i.Results = entity.LeadResults{} },
			missingFields: []string{"results"},
		},
		{
			name: "everything missing",
			mutate: func(i *SubmitLeadInput) {
				*i = SubmitLeadInput{}
			},
			missingFields: []string{"email", "inputs", "results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			errs := ValidateSubmitLeadInput(input)

			assert.Len(t, errs, len(tt.missingFields))
			for i, field := range tt.missingFields {
				assert.Equal(t, field, errs[i].Field)
			}
		})
	}
}

func TestValidateSubmitLeadInputSingleFieldIsEnough(t *testing.T) {
	input := SubmitLeadInput{
		Email:   "ana@example.com",
		Inputs:  entity.LeadInputs{Employees: f(12)},
		Results: entity.LeadResults{ProductivityGain: f(0.15)},
	}

	assert.Empty(t, ValidateSubmitLeadInput(input))
}
