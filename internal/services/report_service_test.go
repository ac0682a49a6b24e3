package services

import (
	"testing"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReportService(reports *mockReportRepo, queue *mockQueueRepo, resolver entity.Resolver, escalator *stubEscalator, notifier *recordingNotifier) *ReportService {
	return NewReportService(reports, queue, resolver, escalator, notifier)
}

func TestCreateReportHappyPath(t *testing.T) {
	reports := new(mockReportRepo)
	queue := new(mockQueueRepo)
	store := new(mockStore)
	escalator := &stubEscalator{item: &models.ModerationQueueItem{ID: 1}}
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeReview, ID: 42}

	store.On("Find", uint64(42)).Return(&entity.Snapshot{ID: 42, Status: models.ContentStatusNormal, OwnerID: 7}, nil)
	queue.On("FindByEntity", ref).Return(nil, repository.ErrRecordNotFound)
	reports.On("FindPending", uint64(9), ref).Return(nil, repository.ErrRecordNotFound)
	reports.On("Create", mock.AnythingOfType("*models.Report")).Return(nil)

	svc := newReportService(reports, queue, resolverFor(entity.TypeReview, store), escalator, notifier)
	report, err := svc.Create(9, ref, models.ReportReasonSpam, "copied answers")

	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, uint64(9), report.ReporterID)
	assert.Equal(t, "review", report.EntityType)

	assert.Equal(t, 1, escalator.calls)
	assert.Equal(t, ref, escalator.ref)
	assert.Equal(t, 1, escalator.delta)

	require.Len(t, notifier.single, 1)
	assert.Equal(t, uint64(9), notifier.single[0].UserID)
	assert.Equal(t, "Report submitted", notifier.single[0].Title)
}

func TestCreateReportDuplicatePendingConflicts(t *testing.T) {
	reports := new(mockReportRepo)
	queue := new(mockQueueRepo)
	store := new(mockStore)
	escalator := &stubEscalator{}
	ref := entity.Ref{Type: entity.TypeReview, ID: 42}

	store.On("Find", uint64(42)).Return(&entity.Snapshot{ID: 42, Status: models.ContentStatusNormal}, nil)
	queue.On("FindByEntity", ref).Return(&models.ModerationQueueItem{ID: 3, Status: models.QueueStatusPending}, nil)
	reports.On("FindPending", uint64(9), ref).Return(&models.Report{ID: 5, Status: models.ReportStatusPending}, nil)

	svc := newReportService(reports, queue, resolverFor(entity.TypeReview, store), escalator, &recordingNotifier{})
	_, err := svc.Create(9, ref, models.ReportReasonSpam, "")

	assert.ErrorIs(t, err, ErrDuplicateReport)
	assert.Zero(t, escalator.calls)
	reports.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReportOrphanedPendingRecovers(t *testing.T) {
	reports := new(mockReportRepo)
	queue := new(mockQueueRepo)
	store := new(mockStore)
	escalator := &stubEscalator{item: &models.ModerationQueueItem{ID: 1}}
	ref := entity.Ref{Type: entity.TypeReview, ID: 42}

	store.On("Find", uint64(42)).Return(&entity.Snapshot{ID: 42, Status: models.ContentStatusNormal}, nil)
	// Queue item is gone; the stale pending report must be closed first.
	queue.On("FindByEntity", ref).Return(nil, repository.ErrRecordNotFound)
	reports.On("FindPending", uint64(9), ref).Return(&models.Report{ID: 5, Status: models.ReportStatusPending}, nil)
	reports.On("UpdateStatus", uint64(5), models.ReportStatusHandled).Return(nil)
	reports.On("Create", mock.AnythingOfType("*models.Report")).Return(nil)

	svc := newReportService(reports, queue, resolverFor(entity.TypeReview, store), escalator, &recordingNotifier{})
	report, err := svc.Create(9, ref, models.ReportReasonAbuse, "")

	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, 1, escalator.calls)
	reports.AssertExpectations(t)
}

func TestCreateReportRemovedQueueRejected(t *testing.T) {
	reports := new(mockReportRepo)
	queue := new(mockQueueRepo)
	store := new(mockStore)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}

	store.On("Find", uint64(7)).Return(&entity.Snapshot{ID: 7, Status: models.ContentStatusNormal}, nil)
	queue.On("FindByEntity", ref).Return(&models.ModerationQueueItem{ID: 2, Status: models.QueueStatusRemoved}, nil)

	svc := newReportService(reports, queue, resolverFor(entity.TypeResource, store), &stubEscalator{}, &recordingNotifier{})
	_, err := svc.Create(9, ref, models.ReportReasonSpam, "")

	assert.ErrorIs(t, err, ErrCannotReportRemoved)
	reports.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateReportDeletedContentRejected(t *testing.T) {
	store := new(mockStore)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}
	store.On("Find", uint64(7)).Return(&entity.Snapshot{ID: 7, Status: models.ContentStatusDeleted}, nil)

	svc := newReportService(new(mockReportRepo), new(mockQueueRepo), resolverFor(entity.TypeResource, store), &stubEscalator{}, &recordingNotifier{})
	_, err := svc.Create(9, ref, models.ReportReasonSpam, "")

	assert.ErrorIs(t, err, ErrContentDeleted)
}

func TestCreateReportMissingEntity(t *testing.T) {
	store := new(mockStore)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}
	store.On("Find", uint64(7)).Return(nil, entity.ErrNotFound)

	svc := newReportService(new(mockReportRepo), new(mockQueueRepo), resolverFor(entity.TypeResource, store), &stubEscalator{}, &recordingNotifier{})
	_, err := svc.Create(9, ref, models.ReportReasonSpam, "")

	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestCreateReportUnknownEntityType(t *testing.T) {
	svc := newReportService(new(mockReportRepo), new(mockQueueRepo), stubResolver{}, &stubEscalator{}, &recordingNotifier{})
	_, err := svc.Create(9, entity.Ref{Type: "gallery", ID: 1}, models.ReportReasonSpam, "")
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestCreateReportInvalidReason(t *testing.T) {
	store := new(mockStore)
	svc := newReportService(new(mockReportRepo), new(mockQueueRepo), resolverFor(entity.TypeReview, store), &stubEscalator{}, &recordingNotifier{})
	_, err := svc.Create(9, entity.Ref{Type: entity.TypeReview, ID: 1}, "grudge", "")
	assert.ErrorIs(t, err, ErrInvalidReason)
}

func TestSetStatusValidatesStatus(t *testing.T) {
	svc := newReportService(new(mockReportRepo), new(mockQueueRepo), stubResolver{}, &stubEscalator{}, &recordingNotifier{})
	assert.ErrorIs(t, svc.SetStatus(1, "escalated"), ErrInvalidDecision)
}

func TestDeleteOnlyHandledReports(t *testing.T) {
	reports := new(mockReportRepo)
	reports.On("FindByID", uint64(5)).Return(&models.Report{ID: 5, Status: models.ReportStatusPending}, nil)

	svc := newReportService(reports, new(mockQueueRepo), stubResolver{}, &stubEscalator{}, &recordingNotifier{})
	err := svc.Delete(5)

	assert.ErrorIs(t, err, ErrReportNotHandled)
	reports.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteHandledReport(t *testing.T) {
	reports := new(mockReportRepo)
	reports.On("FindByID", uint64(5)).Return(&models.Report{ID: 5, Status: models.ReportStatusHandled}, nil)
	reports.On("Delete", uint64(5)).Return(nil)

	svc := newReportService(reports, new(mockQueueRepo), stubResolver{}, &stubEscalator{}, &recordingNotifier{})
	require.NoError(t, svc.Delete(5))
	reports.AssertExpectations(t)
}
