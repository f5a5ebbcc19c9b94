package usecase

import (
	"context"

	"github.com/xavierca1/roi-leads/internal/entity"
	"github.com/xavierca1/roi-leads/internal/infra/queue"
)

type SubmitLeadInput struct {
	Email   string             `json:"email"`
	Inputs  entity.LeadInputs  `json:"inputs"`
	Results entity.LeadResults `json:"results"`
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *entity.Lead) error
	FindByEmail(ctx context.Context, email string) (*entity.Lead, error)
	List(ctx context.Context) ([]entity.Lead, error)
}

type LeadProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
