package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/query"
)

// ResumeStats aggregates the admin overview numbers.
type ResumeStats struct {
	Total        int64    `json:"total"`
	Pending      int64    `json:"pending"`
	Reviewed     int64    `json:"reviewed"`
	Approved     int64    `json:"approved"`
	Rejected     int64    `json:"rejected"`
	TodayUploads int64    `json:"todayUploads"`
	AverageScore *float64 `json:"averageScore"`
}

// ResumeStatusUpdate carries the reviewed-status stamp for batch updates.
type ResumeStatusUpdate struct {
	Status     domain.ResumeStatus
	ReviewTime time.Time
	ReviewerID int64
	Remarks    *string
}

// ResumeRepository encapsulates resume persistence.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	Update(ctx context.Context, resume *domain.Resume) error
	GetByID(ctx context.Context, id int64) (*domain.Resume, error)
	Delete(ctx context.Context, id int64) error
	// FindPage executes the normalized filter spec and returns the page of
	// records plus the total match count.
	FindPage(ctx context.Context, spec *query.Spec) ([]domain.Resume, int, error)
	BatchStatus(ctx context.Context, ids []int64, update ResumeStatusUpdate) (int64, error)
	Stats(ctx context.Context) (*ResumeStats, error)
}

type resumeRepository struct {
	pool *pgxpool.Pool
}

// NewResumeRepository instantiates repository.
func NewResumeRepository(pool *pgxpool.Pool) ResumeRepository {
	return &resumeRepository{pool: pool}
}

const resumeColumns = `id, user_id, resume_name, candidate_name, phone, email, file_path, file_name,
               file_size, ai_score, status, upload_time, review_time, reviewer_id, remarks,
               created_at, updated_at`

func (r *resumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	const query = `
        INSERT INTO resumes (user_id, resume_name, candidate_name, phone, email, file_path,
                             file_name, file_size, ai_score, status, upload_time, remarks)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		resume.UserID,
		resume.ResumeName,
		resume.CandidateName,
		resume.Phone,
		resume.Email,
		resume.FilePath,
		resume.FileName,
		resume.FileSize,
		resume.AIScore,
		resume.Status,
		resume.UploadTime,
		resume.Remarks,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
}

func (r *resumeRepository) Update(ctx context.Context, resume *domain.Resume) error {
	const query = `
        UPDATE resumes SET resume_name=$1, candidate_name=$2, phone=$3, email=$4, file_path=$5,
            file_name=$6, file_size=$7, ai_score=$8, status=$9, review_time=$10, reviewer_id=$11,
            remarks=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		resume.ResumeName,
		resume.CandidateName,
		resume.Phone,
		resume.Email,
		resume.FilePath,
		resume.FileName,
		resume.FileSize,
		resume.AIScore,
		resume.Status,
		resume.ReviewTime,
		resume.ReviewerID,
		resume.Remarks,
		resume.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resumeRepository) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE id=$1`
	return scanResume(r.pool.QueryRow(ctx, q, id))
}

func (r *resumeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resumeRepository) FindPage(ctx context.Context, spec *query.Spec) ([]domain.Resume, int, error) {
	where, args := buildWhere(spec)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE ` + where + orderAndPage(spec)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanResumes(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *resumeRepository) BatchStatus(ctx context.Context, ids []int64, update ResumeStatusUpdate) (int64, error) {
	const query = `
        UPDATE resumes SET status=$1, review_time=$2, reviewer_id=$3,
            remarks=COALESCE($4, remarks), updated_at=NOW()
        WHERE id = ANY($5)`
	cmd, err := r.pool.Exec(ctx, query,
		update.Status,
		update.ReviewTime,
		update.ReviewerID,
		update.Remarks,
		ids,
	)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *resumeRepository) Stats(ctx context.Context) (*ResumeStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='reviewed'),
               COUNT(*) FILTER (WHERE status='approved'),
               COUNT(*) FILTER (WHERE status='rejected'),
               COUNT(*) FILTER (WHERE upload_time >= date_trunc('day', NOW())),
               ROUND(AVG(ai_score)::numeric, 1)
        FROM resumes`
	var stats ResumeStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Reviewed,
		&stats.Approved,
		&stats.Rejected,
		&stats.TodayUploads,
		&stats.AverageScore,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var resume domain.Resume
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.ResumeName,
		&resume.CandidateName,
		&resume.Phone,
		&resume.Email,
		&resume.FilePath,
		&resume.FileName,
		&resume.FileSize,
		&resume.AIScore,
		&resume.Status,
		&resume.UploadTime,
		&resume.ReviewTime,
		&resume.ReviewerID,
		&resume.Remarks,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resume, nil
}

func scanResumes(rows pgx.Rows) ([]domain.Resume, error) {
	var result []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *resume)
	}
	return result, rows.Err()
}
