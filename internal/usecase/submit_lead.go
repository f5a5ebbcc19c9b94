package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/xavierca1/roi-leads/internal/entity"
	"github.com/xavierca1/roi-leads/internal/infra/queue"
)

// SubmitLeadUseCase is the reconciliation pipeline: validate, then a single
// atomic create-or-merge against the store. There is no find-then-save here
// on purpose: two concurrent submissions for the same email must never both
// take the create branch.
type SubmitLeadUseCase struct {
	Repo     LeadRepositoryInterface
	Producer LeadProducerInterface // optional, nil disables events
}

func NewSubmitLeadUseCase(repo LeadRepositoryInterface, producer LeadProducerInterface) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:     repo,
		Producer: producer,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		fields := make([]string, 0, len(validationErrors))
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			fields = append(fields, e.Field)
			msgs = append(msgs, e.Error())
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: " + strings.Join(msgs, ", "),
			Fields:  fields,
		}
	}

	lead := entity.NewLead(input.Email, input.Inputs, input.Results)

	if err := uc.Repo.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
			Err:     err,
		}
	}

	// Best effort: the lead is already stored, a queue hiccup must not fail
	// the submission.
	if uc.Producer != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:    lead.ID,
			Email:     lead.Email,
			FirstSeen: lead.FirstSeen(),
			CostSaved: lead.Results.CostSaved,
			TimeSaved: lead.Results.TimeSaved,
		}
		if err := uc.Producer.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("⚠️ failed to publish lead captured event for %s: %v", lead.Email, err)
		}
	}

	return lead, nil
}
