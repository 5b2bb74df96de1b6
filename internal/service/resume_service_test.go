package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/query"
	"github.com/spec-kit/resume-server/internal/repository"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

type fakeResumeRepo struct {
	byID     map[int64]*domain.Resume
	lastSpec *query.Spec
	page     []domain.Resume
	total    int
	updated  *domain.Resume
	deleted  []int64
	batch    *repository.ResumeStatusUpdate
	batchIDs []int64
	stats    *repository.ResumeStats
}

func (f *fakeResumeRepo) Create(_ context.Context, resume *domain.Resume) error {
	resume.ID = 101
	return nil
}

func (f *fakeResumeRepo) Update(_ context.Context, resume *domain.Resume) error {
	f.updated = resume
	return nil
}

func (f *fakeResumeRepo) GetByID(_ context.Context, id int64) (*domain.Resume, error) {
	resume, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *resume
	return &copied, nil
}

func (f *fakeResumeRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeResumeRepo) FindPage(_ context.Context, spec *query.Spec) ([]domain.Resume, int, error) {
	f.lastSpec = spec
	return f.page, f.total, nil
}

func (f *fakeResumeRepo) BatchStatus(_ context.Context, ids []int64, update repository.ResumeStatusUpdate) (int64, error) {
	f.batchIDs = ids
	f.batch = &update
	return int64(len(ids)), nil
}

func (f *fakeResumeRepo) Stats(_ context.Context) (*repository.ResumeStats, error) {
	return f.stats, nil
}

func regularCaller(id int64) *auth.Principal {
	return &auth.Principal{User: &domain.User{ID: id, Role: domain.RoleUser, IsActive: true}}
}

func adminCaller(id int64) *auth.Principal {
	return &auth.Principal{User: &domain.User{ID: id, Role: domain.RoleAdmin, IsActive: true}}
}

func newResumeService(repo *fakeResumeRepo) *ResumeService {
	return NewResumeService(repo, nil, nil, zap.NewNop())
}

func TestResumeListScopesRegularUsers(t *testing.T) {
	repo := &fakeResumeRepo{total: 25}
	svc := newResumeService(repo)

	_, page, err := svc.List(context.Background(), regularCaller(7), query.Input{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(7), repo.lastSpec.Equality["user_id"])
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestResumeListDoesNotScopeAdmins(t *testing.T) {
	repo := &fakeResumeRepo{}
	svc := newResumeService(repo)

	_, _, err := svc.List(context.Background(), adminCaller(1), query.Input{})
	require.NoError(t, err)

	assert.NotContains(t, repo.lastSpec.Equality, "user_id")
}

func TestResumeListRejectsUnknownFilter(t *testing.T) {
	svc := newResumeService(&fakeResumeRepo{})

	_, _, err := svc.List(context.Background(), regularCaller(7), query.Input{
		Filters: map[string]string{"reviewerSecret": "x"},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestResumeGetOwnership(t *testing.T) {
	repo := &fakeResumeRepo{byID: map[int64]*domain.Resume{
		5: {ID: 5, UserID: 7, ResumeName: "backend.pdf", Status: domain.ResumeStatusPending},
	}}
	svc := newResumeService(repo)

	resume, err := svc.Get(context.Background(), regularCaller(7), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resume.ID)

	_, err = svc.Get(context.Background(), regularCaller(8), 5)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	resume, err = svc.Get(context.Background(), adminCaller(1), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resume.ID)

	_, err = svc.Get(context.Background(), regularCaller(7), 404)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestResumeCreateOwnedByCaller(t *testing.T) {
	svc := newResumeService(&fakeResumeRepo{})

	resume, err := svc.Create(context.Background(), regularCaller(7), ResumeCreateInput{
		ResumeName:    "  backend.pdf  ",
		CandidateName: " Zhang San ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resume.UserID)
	assert.Equal(t, "backend.pdf", resume.ResumeName)
	assert.Equal(t, "Zhang San", resume.CandidateName)
	assert.Equal(t, domain.ResumeStatusPending, resume.Status)
	assert.False(t, resume.UploadTime.IsZero())
}

func TestResumeCreateRequiresNames(t *testing.T) {
	svc := newResumeService(&fakeResumeRepo{})

	_, err := svc.Create(context.Background(), regularCaller(7), ResumeCreateInput{ResumeName: "   "})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestResumeUpdateAdminStatusChangeStampsReview(t *testing.T) {
	repo := &fakeResumeRepo{byID: map[int64]*domain.Resume{
		5: {ID: 5, UserID: 7, ResumeName: "backend.pdf", Status: domain.ResumeStatusPending},
	}}
	svc := newResumeService(repo)

	status := domain.ResumeStatusApproved
	resume, err := svc.Update(context.Background(), adminCaller(2), 5, ResumeUpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.ResumeStatusApproved, resume.Status)
	require.NotNil(t, resume.ReviewTime)
	require.NotNil(t, resume.ReviewerID)
	assert.Equal(t, int64(2), *resume.ReviewerID)
}

func TestResumeUpdateOwnerStatusChangeLeavesReviewUnstamped(t *testing.T) {
	repo := &fakeResumeRepo{byID: map[int64]*domain.Resume{
		5: {ID: 5, UserID: 7, ResumeName: "backend.pdf", Status: domain.ResumeStatusPending},
	}}
	svc := newResumeService(repo)

	status := domain.ResumeStatusReviewed
	resume, err := svc.Update(context.Background(), regularCaller(7), 5, ResumeUpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.ResumeStatusReviewed, resume.Status)
	assert.Nil(t, resume.ReviewTime)
	assert.Nil(t, resume.ReviewerID)
}

func TestResumeUpdateRejectsInvalidStatus(t *testing.T) {
	repo := &fakeResumeRepo{byID: map[int64]*domain.Resume{
		5: {ID: 5, UserID: 7, ResumeName: "backend.pdf", Status: domain.ResumeStatusPending},
	}}
	svc := newResumeService(repo)

	status := domain.ResumeStatus("archived")
	_, err := svc.Update(context.Background(), adminCaller(2), 5, ResumeUpdateInput{Status: &status})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestResumeDeleteGated(t *testing.T) {
	repo := &fakeResumeRepo{byID: map[int64]*domain.Resume{
		5: {ID: 5, UserID: 7, Status: domain.ResumeStatusPending},
	}}
	svc := newResumeService(repo)

	err := svc.Delete(context.Background(), regularCaller(8), 5)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), regularCaller(7), 5))
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestResumeBatchStatusStampsReviewer(t *testing.T) {
	repo := &fakeResumeRepo{}
	svc := newResumeService(repo)

	affected, err := svc.BatchStatus(context.Background(), adminCaller(2), []int64{1, 2, 3}, domain.ResumeStatusRejected, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), affected)
	assert.Equal(t, []int64{1, 2, 3}, repo.batchIDs)
	assert.Equal(t, domain.ResumeStatusRejected, repo.batch.Status)
	assert.Equal(t, int64(2), repo.batch.ReviewerID)
}

func TestResumeBatchStatusValidation(t *testing.T) {
	svc := newResumeService(&fakeResumeRepo{})

	_, err := svc.BatchStatus(context.Background(), adminCaller(2), nil, domain.ResumeStatusApproved, nil)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.BatchStatus(context.Background(), adminCaller(2), []int64{1}, "archived", nil)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestResumeStatsFallsBackWithoutCache(t *testing.T) {
	score := 82.5
	repo := &fakeResumeRepo{stats: &repository.ResumeStats{Total: 9, AverageScore: &score}}
	svc := newResumeService(repo)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), stats.Total)
	assert.Equal(t, 82.5, *stats.AverageScore)
}
