package services

import (
	"testing"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNextQueueStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		delta   int
		want    string
		wantErr error
	}{
		{"pending stays pending", models.QueueStatusPending, 1, models.QueueStatusPending, nil},
		{"pending_review stays", models.QueueStatusPendingReview, 1, models.QueueStatusPendingReview, nil},
		{"approved reopens", models.QueueStatusApproved, 1, models.QueueStatusPendingReview, nil},
		{"rejected reopens", models.QueueStatusRejected, 1, models.QueueStatusPendingReview, nil},
		{"removed rejects new reports", models.QueueStatusRemoved, 1, "", ErrCannotReportRemoved},
		{"removed tolerates manual touch", models.QueueStatusRemoved, 0, models.QueueStatusRemoved, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextQueueStatus(tt.current, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newModerationService(queue *mockQueueRepo, reports *mockReportRepo, resolver entity.Resolver, notifier Notifier) *ModerationService {
	return NewModerationService(queue, reports, resolver, notifier)
}

func TestEscalateCreatesQueueItem(t *testing.T) {
	queue := new(mockQueueRepo)
	ref := entity.Ref{Type: entity.TypeReview, ID: 42}

	created := &models.ModerationQueueItem{ID: 1, EntityType: "review", EntityID: 42, ReportCount: 1, Status: models.QueueStatusPending}
	queue.On("FindOrCreate", ref, models.ModerationQueueItem{ReportCount: 1, Status: models.QueueStatusPending}).
		Return(created, true, nil)

	svc := newModerationService(queue, new(mockReportRepo), stubResolver{}, &recordingNotifier{})
	item, err := svc.Escalate(ref, 1)

	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusPending, item.Status)
	assert.Equal(t, 1, item.ReportCount)
	queue.AssertNotCalled(t, "ApplyEscalation", mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalateReopensClearedItem(t *testing.T) {
	queue := new(mockQueueRepo)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}

	existing := &models.ModerationQueueItem{ID: 3, EntityType: "resource", EntityID: 7, ReportCount: 2, Status: models.QueueStatusApproved}
	queue.On("FindOrCreate", ref, mock.Anything).Return(existing, false, nil)
	queue.On("ApplyEscalation", uint64(3), 1, models.QueueStatusPendingReview).Return(nil)

	svc := newModerationService(queue, new(mockReportRepo), stubResolver{}, &recordingNotifier{})
	item, err := svc.Escalate(ref, 1)

	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusPendingReview, item.Status)
	assert.Equal(t, 3, item.ReportCount)
	queue.AssertExpectations(t)
}

func TestEscalateRemovedRejectsReportDriven(t *testing.T) {
	queue := new(mockQueueRepo)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}

	existing := &models.ModerationQueueItem{ID: 3, Status: models.QueueStatusRemoved, ReportCount: 5}
	queue.On("FindOrCreate", ref, mock.Anything).Return(existing, false, nil)

	svc := newModerationService(queue, new(mockReportRepo), stubResolver{}, &recordingNotifier{})
	_, err := svc.Escalate(ref, 1)

	assert.ErrorIs(t, err, ErrCannotReportRemoved)
	queue.AssertNotCalled(t, "ApplyEscalation", mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalateRemovedManualIsNoop(t *testing.T) {
	queue := new(mockQueueRepo)
	ref := entity.Ref{Type: entity.TypeResource, ID: 7}

	existing := &models.ModerationQueueItem{ID: 3, Status: models.QueueStatusRemoved, ReportCount: 5}
	queue.On("FindOrCreate", ref, mock.Anything).Return(existing, false, nil)
	queue.On("ApplyEscalation", uint64(3), 0, models.QueueStatusRemoved).Return(nil)

	svc := newModerationService(queue, new(mockReportRepo), stubResolver{}, &recordingNotifier{})
	item, err := svc.Escalate(ref, 0)

	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusRemoved, item.Status)
	assert.Equal(t, 5, item.ReportCount)
}

func TestHandleRejectsInvalidDecision(t *testing.T) {
	svc := newModerationService(new(mockQueueRepo), new(mockReportRepo), stubResolver{}, &recordingNotifier{})
	_, err := svc.Handle(1, 1, "bogus", "", "")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestHandleRemovedCascadesAndNotifies(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	store := new(mockStore)
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeResource, ID: 5}

	item := &models.ModerationQueueItem{ID: 10, EntityType: "resource", EntityID: 5, ReportCount: 3, Status: models.QueueStatusPending}
	queue.On("FindByID", uint64(10)).Return(item, nil)
	queue.On("Resolve", mock.Anything).Return(nil)

	store.On("Find", uint64(5)).Return(&entity.Snapshot{ID: 5, Status: models.ContentStatusNormal, OwnerID: 9}, nil)
	store.On("UpdateStatus", uint64(5), models.ContentStatusDeleted).Return(nil)

	pending := []models.Report{
		{ID: 1, ReporterID: 100},
		{ID: 2, ReporterID: 100},
		{ID: 3, ReporterID: 200},
	}
	reports.On("ListPendingByEntity", ref).Return(pending, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)

	svc := newModerationService(queue, reports, resolverFor(entity.TypeResource, store), notifier)
	handled, err := svc.Handle(77, 10, models.QueueStatusRemoved, "", "spam ring")

	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusRemoved, handled.Status)
	require.NotNil(t, handled.HandledBy)
	assert.Equal(t, uint64(77), *handled.HandledBy)
	assert.NotNil(t, handled.HandledAt)
	assert.Equal(t, "spam ring", handled.Notes)

	// Reporters are deduplicated, owner is told about the removal.
	require.Len(t, notifier.batch, 2)
	assert.ElementsMatch(t, []uint64{100, 200}, []uint64{notifier.batch[0].UserID, notifier.batch[1].UserID})
	require.Len(t, notifier.single, 1)
	assert.Equal(t, uint64(9), notifier.single[0].UserID)
	assert.Contains(t, notifier.single[0].Title, "removed")

	store.AssertExpectations(t)
	reports.AssertExpectations(t)
}

func TestHandleApproveWithHideHidesResource(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	store := new(mockStore)
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeResource, ID: 5}

	item := &models.ModerationQueueItem{ID: 10, EntityType: "resource", EntityID: 5, Status: models.QueueStatusPending}
	queue.On("FindByID", uint64(10)).Return(item, nil)
	queue.On("Resolve", mock.Anything).Return(nil)

	store.On("Find", uint64(5)).Return(&entity.Snapshot{ID: 5, Status: models.ContentStatusNormal, OwnerID: 9}, nil)
	store.On("UpdateStatus", uint64(5), models.ContentStatusHidden).Return(nil)

	reports.On("ListPendingByEntity", ref).Return([]models.Report{{ID: 1, ReporterID: 100}}, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)

	svc := newModerationService(queue, reports, resolverFor(entity.TypeResource, store), notifier)
	_, err := svc.Handle(77, 10, models.QueueStatusApproved, ActionHide, "")

	require.NoError(t, err)
	require.Len(t, notifier.single, 1)
	assert.Contains(t, notifier.single[0].Title, "hidden")
	store.AssertExpectations(t)
}

func TestHandleApproveRestoresHiddenResource(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	store := new(mockStore)
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeResource, ID: 5}

	item := &models.ModerationQueueItem{ID: 10, EntityType: "resource", EntityID: 5, Status: models.QueueStatusPendingReview}
	queue.On("FindByID", uint64(10)).Return(item, nil)
	queue.On("Resolve", mock.Anything).Return(nil)

	store.On("Find", uint64(5)).Return(&entity.Snapshot{ID: 5, Status: models.ContentStatusHidden, OwnerID: 9}, nil)
	store.On("UpdateStatus", uint64(5), models.ContentStatusNormal).Return(nil)

	reports.On("ListPendingByEntity", ref).Return([]models.Report{}, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)

	svc := newModerationService(queue, reports, resolverFor(entity.TypeResource, store), notifier)
	_, err := svc.Handle(77, 10, models.QueueStatusApproved, "", "")

	require.NoError(t, err)
	// Content was cleared without hiding: the owner hears nothing.
	assert.Empty(t, notifier.single)
	store.AssertExpectations(t)
}

func TestHandleRejectedLeavesEntityAlone(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	store := new(mockStore)
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeReview, ID: 8}

	item := &models.ModerationQueueItem{ID: 11, EntityType: "review", EntityID: 8, Status: models.QueueStatusPending}
	queue.On("FindByID", uint64(11)).Return(item, nil)
	queue.On("Resolve", mock.Anything).Return(nil)

	store.On("Find", uint64(8)).Return(&entity.Snapshot{ID: 8, Status: models.ContentStatusNormal, OwnerID: 3}, nil)

	reports.On("ListPendingByEntity", ref).Return([]models.Report{{ID: 1, ReporterID: 50}}, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)

	svc := newModerationService(queue, reports, resolverFor(entity.TypeReview, store), notifier)
	_, err := svc.Handle(77, 11, models.QueueStatusRejected, "", "")

	require.NoError(t, err)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	// Reporters still learn their report was reviewed.
	require.Len(t, notifier.batch, 1)
	assert.Equal(t, uint64(50), notifier.batch[0].UserID)
	assert.Empty(t, notifier.single)
}

func TestHandleToleratesVanishedEntity(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	store := new(mockStore)
	notifier := &recordingNotifier{}
	ref := entity.Ref{Type: entity.TypeResource, ID: 5}

	item := &models.ModerationQueueItem{ID: 10, EntityType: "resource", EntityID: 5, Status: models.QueueStatusPending}
	queue.On("FindByID", uint64(10)).Return(item, nil)
	queue.On("Resolve", mock.Anything).Return(nil)

	store.On("Find", uint64(5)).Return(nil, entity.ErrNotFound)

	reports.On("ListPendingByEntity", ref).Return([]models.Report{}, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)

	svc := newModerationService(queue, reports, resolverFor(entity.TypeResource, store), notifier)
	_, err := svc.Handle(77, 10, models.QueueStatusRemoved, "", "")

	require.NoError(t, err)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.single)
}

func TestDeleteItemClosesPendingReportsFirst(t *testing.T) {
	queue := new(mockQueueRepo)
	reports := new(mockReportRepo)
	ref := entity.Ref{Type: entity.TypeReview, ID: 8}

	item := &models.ModerationQueueItem{ID: 11, EntityType: "review", EntityID: 8, Status: models.QueueStatusPending}
	queue.On("FindByID", uint64(11)).Return(item, nil)
	reports.On("MarkPendingHandled", ref).Return(nil)
	queue.On("Delete", uint64(11)).Return(nil)

	svc := newModerationService(queue, reports, stubResolver{}, &recordingNotifier{})
	require.NoError(t, svc.DeleteItem(11))

	reports.AssertExpectations(t)
	queue.AssertExpectations(t)
}
