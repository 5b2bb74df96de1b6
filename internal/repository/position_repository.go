package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/query"
)

// PositionStats aggregates the admin overview numbers.
type PositionStats struct {
	Total           int64             `json:"total"`
	Draft           int64             `json:"draft"`
	Published       int64             `json:"published"`
	Paused          int64             `json:"paused"`
	Closed          int64             `json:"closed"`
	TodayCreated    int64             `json:"todayCreated"`
	DepartmentStats []DepartmentCount `json:"departmentStats"`
	WorkTypeStats   []WorkTypeCount   `json:"workTypeStats"`
}

// DepartmentCount is one row of the per-department breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// WorkTypeCount is one row of the per-work-type breakdown.
type WorkTypeCount struct {
	WorkType domain.WorkType `json:"workType"`
	Count    int64           `json:"count"`
}

// PositionStatusUpdate carries stamp fields for batch status changes. Nil
// stamp fields leave the stored values untouched.
type PositionStatusUpdate struct {
	Status      domain.PositionStatus
	PublishTime *time.Time
	PublisherID *int64
	CloseTime   *time.Time
	Remarks     *string
}

// PositionRepository encapsulates position persistence.
type PositionRepository interface {
	Create(ctx context.Context, position *domain.Position) error
	Update(ctx context.Context, position *domain.Position) error
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	Delete(ctx context.Context, id int64) error
	FindPage(ctx context.Context, spec *query.Spec) ([]domain.Position, int, error)
	BatchStatus(ctx context.Context, ids []int64, update PositionStatusUpdate) (int64, error)
	Stats(ctx context.Context) (*PositionStats, error)
}

type positionRepository struct {
	pool *pgxpool.Pool
}

// NewPositionRepository instantiates repository.
func NewPositionRepository(pool *pgxpool.Pool) PositionRepository {
	return &positionRepository{pool: pool}
}

const positionColumns = `id, user_id, position_name, department, description, requirements,
               salary_min, salary_max, work_location, work_type, experience_level, status,
               publish_time, close_time, publisher_id, remarks, created_at, updated_at`

func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	const query = `
        INSERT INTO positions (user_id, position_name, department, description, requirements,
                               salary_min, salary_max, work_location, work_type, experience_level,
                               status, remarks)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		position.UserID,
		position.PositionName,
		position.Department,
		position.Description,
		position.Requirements,
		position.SalaryMin,
		position.SalaryMax,
		position.WorkLocation,
		position.WorkType,
		position.ExperienceLevel,
		position.Status,
		position.Remarks,
	).Scan(&position.ID, &position.CreatedAt, &position.UpdatedAt)
}

func (r *positionRepository) Update(ctx context.Context, position *domain.Position) error {
	const query = `
        UPDATE positions SET position_name=$1, department=$2, description=$3, requirements=$4,
            salary_min=$5, salary_max=$6, work_location=$7, work_type=$8, experience_level=$9,
            status=$10, publish_time=$11, close_time=$12, publisher_id=$13, remarks=$14,
            updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		position.PositionName,
		position.Department,
		position.Description,
		position.Requirements,
		position.SalaryMin,
		position.SalaryMax,
		position.WorkLocation,
		position.WorkType,
		position.ExperienceLevel,
		position.Status,
		position.PublishTime,
		position.CloseTime,
		position.PublisherID,
		position.Remarks,
		position.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *positionRepository) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	q := `SELECT ` + positionColumns + ` FROM positions WHERE id=$1`
	return scanPosition(r.pool.QueryRow(ctx, q, id))
}

func (r *positionRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM positions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *positionRepository) FindPage(ctx context.Context, spec *query.Spec) ([]domain.Position, int, error) {
	where, args := buildWhere(spec)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM positions WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + positionColumns + ` FROM positions WHERE ` + where + orderAndPage(spec)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanPositions(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *positionRepository) BatchStatus(ctx context.Context, ids []int64, update PositionStatusUpdate) (int64, error) {
	const query = `
        UPDATE positions SET status=$1,
            publish_time=COALESCE($2, publish_time),
            publisher_id=COALESCE($3, publisher_id),
            close_time=COALESCE($4, close_time),
            remarks=COALESCE($5, remarks),
            updated_at=NOW()
        WHERE id = ANY($6)`
	cmd, err := r.pool.Exec(ctx, query,
		update.Status,
		update.PublishTime,
		update.PublisherID,
		update.CloseTime,
		update.Remarks,
		ids,
	)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *positionRepository) Stats(ctx context.Context) (*PositionStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='draft'),
               COUNT(*) FILTER (WHERE status='published'),
               COUNT(*) FILTER (WHERE status='paused'),
               COUNT(*) FILTER (WHERE status='closed'),
               COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW()))
        FROM positions`
	var stats PositionStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Draft,
		&stats.Published,
		&stats.Paused,
		&stats.Closed,
		&stats.TodayCreated,
	); err != nil {
		return nil, err
	}

	departments, err := r.departmentBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	stats.DepartmentStats = departments

	workTypes, err := r.workTypeBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	stats.WorkTypeStats = workTypes

	return &stats, nil
}

func (r *positionRepository) departmentBreakdown(ctx context.Context) ([]DepartmentCount, error) {
	const query = `
        SELECT department, COUNT(id)
        FROM positions
        GROUP BY department
        ORDER BY COUNT(id) DESC
        LIMIT 10`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DepartmentCount
	for rows.Next() {
		var entry DepartmentCount
		if err := rows.Scan(&entry.Department, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *positionRepository) workTypeBreakdown(ctx context.Context) ([]WorkTypeCount, error) {
	const query = `
        SELECT work_type, COUNT(id)
        FROM positions
        GROUP BY work_type`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WorkTypeCount
	for rows.Next() {
		var entry WorkTypeCount
		if err := rows.Scan(&entry.WorkType, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func scanPosition(row pgx.Row) (*domain.Position, error) {
	var position domain.Position
	if err := row.Scan(
		&position.ID,
		&position.UserID,
		&position.PositionName,
		&position.Department,
		&position.Description,
		&position.Requirements,
		&position.SalaryMin,
		&position.SalaryMax,
		&position.WorkLocation,
		&position.WorkType,
		&position.ExperienceLevel,
		&position.Status,
		&position.PublishTime,
		&position.CloseTime,
		&position.PublisherID,
		&position.Remarks,
		&position.CreatedAt,
		&position.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &position, nil
}

func scanPositions(rows pgx.Rows) ([]domain.Position, error) {
	var result []domain.Position
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *position)
	}
	return result, rows.Err()
}
