package plan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no plan matches the lookup.
var ErrNotFound = errors.New("plan not found")

// TypeCount pairs a product type with the number of active plans of that type.
type TypeCount struct {
	Type  string
	Count int
}

// Repository persists investment plans.
type Repository interface {
	Create(ctx context.Context, p Plan) error
	Update(ctx context.Context, p Plan) error
	Get(ctx context.Context, id string) (Plan, error)
	List(ctx context.Context) ([]Plan, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountActiveByType(ctx context.Context) ([]TypeCount, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed plan repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const planColumns = `id, product_name, roi_aar, roi_amr, min_investment, investment_term,
        product_type, status, total_gain, maturity_value, created_at, updated_at`

// Create inserts a new plan.
func (r *PostgresRepository) Create(ctx context.Context, p Plan) error {
	planID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO plans (`+planColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		planID, p.ProductName, p.ROIAAR, p.ROIAMR, p.MinInvestment, p.InvestmentTerm,
		p.ProductType, p.Status, p.TotalGain, p.MaturityValue, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

// Update rewrites all mutable plan fields.
func (r *PostgresRepository) Update(ctx context.Context, p Plan) error {
	planID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE plans SET product_name = $1, roi_aar = $2, roi_amr = $3,
        min_investment = $4, investment_term = $5, product_type = $6, status = $7,
        total_gain = $8, maturity_value = $9, updated_at = $10 WHERE id = $11`,
		p.ProductName, p.ROIAAR, p.ROIAMR, p.MinInvestment, p.InvestmentTerm, p.ProductType,
		p.Status, p.TotalGain, p.MaturityValue, p.UpdatedAt.UTC(), planID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get fetches a plan by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Plan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return Plan{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, planID)
	return scanPlan(row)
}

// List returns all plans, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM plans ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdateStatus flips a plan between ACTIVE and DEACTIVATED.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	planID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE plans SET status = $1, updated_at = NOW() WHERE id = $2`, status, planID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a plan.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	planID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByType groups active plans by product type.
func (r *PostgresRepository) CountActiveByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := r.db.Query(ctx, `SELECT product_type, COUNT(*) FROM plans
        WHERE status = $1 GROUP BY product_type`, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func scanPlan(row pgx.Row) (Plan, error) {
	var (
		id               uuid.UUID
		created, updated time.Time
		p                Plan
	)
	if err := row.Scan(&id, &p.ProductName, &p.ROIAAR, &p.ROIAMR, &p.MinInvestment, &p.InvestmentTerm,
		&p.ProductType, &p.Status, &p.TotalGain, &p.MaturityValue, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	p.ID = id.String()
	p.CreatedAt = created.UTC()
	p.UpdatedAt = updated.UTC()
	return p, nil
}
