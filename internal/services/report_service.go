package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/metrics"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrDuplicateReport  = errors.New("you already have a pending report on this content")
	ErrContentDeleted   = errors.New("content no longer exists")
	ErrInvalidReason    = errors.New("invalid report reason")
	ErrReportNotHandled = errors.New("only handled reports can be deleted")
)

// QueueEscalator is the slice of the moderation orchestrator the report flow
// needs. Reports only ever push the queue forward; they never resolve it.
type QueueEscalator interface {
	Escalate(ref entity.Ref, delta int) (*models.ModerationQueueItem, error)
}

// ReportService owns the report ledger. Every accepted report escalates the
// moderation queue by exactly one.
type ReportService struct {
	reports  repository.ReportRepository
	queue    repository.QueueRepository
	entities entity.Resolver
	escalate QueueEscalator
	notifier Notifier
}

func NewReportService(reports repository.ReportRepository, queue repository.QueueRepository, entities entity.Resolver, escalate QueueEscalator, notifier Notifier) *ReportService {
	return &ReportService{
		reports:  reports,
		queue:    queue,
		entities: entities,
		escalate: escalate,
		notifier: notifier,
	}
}

func validReason(reason string) bool {
	switch reason {
	case models.ReportReasonPlagiarism, models.ReportReasonAbuse,
		models.ReportReasonSpam, models.ReportReasonOther:
		return true
	}
	return false
}

// Create accepts a report against ref and escalates the moderation queue.
//
// Rejections, in order: unknown entity type, invalid reason, entity missing
// or already deleted, queue item already removed, duplicate pending report.
// A pending report whose queue item has vanished is an orphan: it is closed
// and the new report accepted.
func (s *ReportService) Create(reporterID uint64, ref entity.Ref, reason, details string) (*models.Report, error) {
	store, ok := s.entities.Store(ref.Type)
	if !ok {
		return nil, ErrUnknownEntityType
	}
	if !validReason(reason) {
		return nil, ErrInvalidReason
	}

	snapshot, err := store.Find(ref.ID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	if snapshot.Status == models.ContentStatusDeleted {
		return nil, ErrContentDeleted
	}

	item, err := s.queue.FindByEntity(ref)
	queueExists := err == nil
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if queueExists && item.Status == models.QueueStatusRemoved {
		return nil, ErrCannotReportRemoved
	}

	if existing, err := s.reports.FindPending(reporterID, ref); err == nil {
		if queueExists {
			return nil, ErrDuplicateReport
		}
		// Queue item is gone but the report stayed pending. Close the
		// stale one so the ledger matches the queue again.
		slog.Warn("closing orphaned pending report", "report_id", existing.ID, "entity", ref.String())
		if err := s.reports.UpdateStatus(existing.ID, models.ReportStatusHandled); err != nil {
			return nil, err
		}
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	report := &models.Report{
		ReporterID: reporterID,
		EntityType: string(ref.Type),
		EntityID:   ref.ID,
		Reason:     reason,
		Details:    details,
		Status:     models.ReportStatusPending,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}

	if _, err := s.escalate.Escalate(ref, 1); err != nil {
		return nil, err
	}

	s.notifier.Notify(NotificationInput{
		UserID:  reporterID,
		Type:    models.NotificationTypeSystem,
		Title:   "Report submitted",
		Content: fmt.Sprintf("Your report against a %s has been received and will be reviewed", ref.Type.DisplayName()),
		Ref:     &ref,
	})

	metrics.ReportsCreatedTotal.WithLabelValues(string(ref.Type)).Inc()
	slog.Info("report created",
		"report_id", report.ID, "reporter_id", reporterID, "entity", ref.String(), "reason", reason)
	return report, nil
}

func (s *ReportService) List(f repository.ReportFilter) ([]models.Report, int64, error) {
	return s.reports.List(f)
}

func (s *ReportService) ListMine(reporterID uint64, page, limit int) ([]models.Report, int64, error) {
	return s.reports.ListByReporter(reporterID, page, limit)
}

func (s *ReportService) Get(id uint64) (*models.Report, error) {
	report, err := s.reports.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// SetStatus is a raw admin override on a single report. It does not touch the
// queue; Handle on the queue item is the cascading path.
func (s *ReportService) SetStatus(id uint64, status string) error {
	if status != models.ReportStatusPending && status != models.ReportStatusHandled {
		return ErrInvalidDecision
	}
	if err := s.reports.UpdateStatus(id, status); err != nil {
		if repository.IsNotFound(err) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

// Delete removes a single handled report from the ledger. Pending reports are
// part of live queue state and cannot be deleted directly.
func (s *ReportService) Delete(id uint64) error {
	report, err := s.Get(id)
	if err != nil {
		return err
	}
	if report.Status != models.ReportStatusHandled {
		return ErrReportNotHandled
	}
	return s.reports.Delete(id)
}
