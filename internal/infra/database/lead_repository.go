package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/roi-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert is the single load-bearing statement of the whole service. Create
// and merge happen inside one INSERT ... ON CONFLICT, so two concurrent
// submissions for the same email can never both observe "no record". The
// unique index on email backs it up at the storage level.
//
// COALESCE keeps the merge partial: only fields present in the incoming
// submission overwrite stored values. created_at is never touched on
// conflict; updated_at always is.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, email,
			hours, hourly_wage, employees, weeks_per_year,
			time_saved, cost_saved, productivity_gain,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (email)
		DO UPDATE SET
			hours             = COALESCE(EXCLUDED.hours, leads.hours),
			hourly_wage       = COALESCE(EXCLUDED.hourly_wage, leads.hourly_wage),
			employees         = COALESCE(EXCLUDED.employees, leads.employees),
			weeks_per_year    = COALESCE(EXCLUDED.weeks_per_year, leads.weeks_per_year),
			time_saved        = COALESCE(EXCLUDED.time_saved, leads.time_saved),
			cost_saved        = COALESCE(EXCLUDED.cost_saved, leads.cost_saved),
			productivity_gain = COALESCE(EXCLUDED.productivity_gain, leads.productivity_gain),
			updated_at        = EXCLUDED.updated_at
		RETURNING
			id,
			hours, hourly_wage, employees, weeks_per_year,
			time_saved, cost_saved, productivity_gain,
			created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Email,
		lead.Inputs.Hours,
		lead.Inputs.HourlyWage,
		lead.Inputs.Employees,
		lead.Inputs.WeeksPerYear,
		lead.Results.TimeSaved,
		lead.Results.CostSaved,
		lead.Results.ProductivityGain,
		lead.UpdatedAt,
	).Scan(
		&lead.ID,
		&lead.Inputs.Hours,
		&lead.Inputs.HourlyWage,
		&lead.Inputs.Employees,
		&lead.Inputs.WeeksPerYear,
		&lead.Results.TimeSaved,
		&lead.Results.CostSaved,
		&lead.Results.ProductivityGain,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}

		log.Printf("lead upsert failed for %s: %v", lead.Email, err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `
		SELECT
			id, email,
			hours, hourly_wage, employees, weeks_per_year,
			time_saved, cost_saved, productivity_gain,
			created_at, updated_at
		FROM leads
		WHERE email = $1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&lead.ID,
		&lead.Email,
		&lead.Inputs.Hours,
		&lead.Inputs.HourlyWage,
		&lead.Inputs.Employees,
		&lead.Inputs.WeeksPerYear,
		&lead.Results.TimeSaved,
		&lead.Results.CostSaved,
		&lead.Results.ProductivityGain,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absence is the legitimate create branch, not a failure.
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	return &lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT
			id, email,
			hours, hourly_wage, employees, weeks_per_year,
			time_saved, cost_saved, productivity_gain,
			created_at, updated_at
		FROM leads
		ORDER BY updated_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var lead entity.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Email,
			&lead.Inputs.Hours,
			&lead.Inputs.HourlyWage,
			&lead.Inputs.Employees,
			&lead.Inputs.WeeksPerYear,
			&lead.Results.TimeSaved,
			&lead.Results.CostSaved,
			&lead.Results.ProductivityGain,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}
