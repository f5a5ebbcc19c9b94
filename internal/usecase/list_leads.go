package usecase

import (
	"context"

	"github.com/xavierca1/roi-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Repo LeadRepositoryInterface
}

func NewListLeadsUseCase(repo LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

// Execute returns every captured lead, most recent activity first. The
// ordering comes from the store so a merged lead surfaces ahead of older
// untouched ones.
func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to fetch leads: " + err.Error(),
			Err:     err,
		}
	}
	return leads, nil
}
