package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/metrics"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
)

var (
	ErrQueueItemNotFound   = errors.New("moderation queue item not found")
	ErrEntityNotFound      = errors.New("entity not found")
	ErrCannotReportRemoved = errors.New("cannot report removed content")
	ErrInvalidDecision     = errors.New("invalid moderation decision")
	ErrUnknownEntityType   = errors.New("unknown entity type")
)

// ActionHide is the only supported auxiliary action on an approved decision;
// it applies to resources.
const ActionHide = "hide"

// QueueStats is the aggregate view for the admin dashboard.
type QueueStats struct {
	Queue   map[string]int64 `json:"queue"`
	Reports map[string]int64 `json:"reports"`
}

// QueueDetail bundles a queue item with its report history and the projected
// entity.
type QueueDetail struct {
	Item    *models.ModerationQueueItem `json:"item"`
	Reports []models.Report             `json:"reports"`
	Entity  *entity.Detail              `json:"entity"`
}

// ModerationService owns the moderation queue state machine and the cascade
// from admin decisions to entity visibility, report resolution and
// notifications. No other component writes the queue.
type ModerationService struct {
	queue    repository.QueueRepository
	reports  repository.ReportRepository
	entities entity.Resolver
	notifier Notifier
}

func NewModerationService(queue repository.QueueRepository, reports repository.ReportRepository, entities entity.Resolver, notifier Notifier) *ModerationService {
	return &ModerationService{
		queue:    queue,
		reports:  reports,
		entities: entities,
		notifier: notifier,
	}
}

// nextQueueStatus computes the status a queue item escalates to when delta
// new reports land on it.
//
// approved/rejected move back to pending_review: the content was cleared
// before, but new reports demand a fresh look. removed rejects report-driven
// escalation outright; CreateReport pre-checks this, so hitting it here
// means a guard was bypassed. Manual creation (delta=0) leaves removed
// untouched.
func nextQueueStatus(current string, delta int) (string, error) {
	switch current {
	case models.QueueStatusRemoved:
		if delta > 0 {
			return "", ErrCannotReportRemoved
		}
		return models.QueueStatusRemoved, nil
	case models.QueueStatusApproved, models.QueueStatusRejected:
		return models.QueueStatusPendingReview, nil
	case models.QueueStatusPending, models.QueueStatusPendingReview:
		return current, nil
	default:
		return "", fmt.Errorf("unexpected queue status %q", current)
	}
}

// isActiveDecision reports whether a decision leaves the item open.
func isActiveDecision(decision string) bool {
	return decision == models.QueueStatusPending || decision == models.QueueStatusPendingReview
}

func validDecision(decision string) bool {
	switch decision {
	case models.QueueStatusPending, models.QueueStatusPendingReview,
		models.QueueStatusApproved, models.QueueStatusRejected, models.QueueStatusRemoved:
		return true
	}
	return false
}

// Escalate records delta new reports against ref, creating the queue item if
// it does not exist yet. Creation races are settled by the unique index on
// (entity_type, entity_id); the loser lands in the update branch.
func (s *ModerationService) Escalate(ref entity.Ref, delta int) (*models.ModerationQueueItem, error) {
	item, created, err := s.queue.FindOrCreate(ref, models.ModerationQueueItem{
		ReportCount: delta,
		Status:      models.QueueStatusPending,
	})
	if err != nil {
		return nil, err
	}
	if created {
		slog.Info("moderation queue item created", "entity", ref.String(), "report_count", delta)
		return item, nil
	}

	next, err := nextQueueStatus(item.Status, delta)
	if err != nil {
		slog.Warn("escalation rejected", "entity", ref.String(), "status", item.Status, "error", err)
		return nil, err
	}
	if err := s.queue.ApplyEscalation(item.ID, delta, next); err != nil {
		return nil, err
	}
	item.ReportCount += delta
	item.Status = next
	return item, nil
}

// CreateManual opens a queue item ahead of any reports (delta=0). The entity
// must exist; existing report counts are left alone.
func (s *ModerationService) CreateManual(ref entity.Ref, notes string) (*models.ModerationQueueItem, error) {
	store, ok := s.entities.Store(ref.Type)
	if !ok {
		return nil, ErrUnknownEntityType
	}
	if _, err := store.Find(ref.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	item, err := s.Escalate(ref, 0)
	if err != nil {
		return nil, err
	}
	if notes != "" {
		if err := s.queue.UpdateNotes(item.ID, notes); err != nil {
			return nil, err
		}
		item.Notes = notes
	}
	return item, nil
}

// Handle applies an admin decision to a queue item: stamps the resolution,
// cascades into entity visibility, bulk-resolves pending reports and fans
// out notifications. Notifications are best-effort and cannot fail the
// decision.
func (s *ModerationService) Handle(adminID, itemID uint64, decision, action, notes string) (*models.ModerationQueueItem, error) {
	if !validDecision(decision) {
		return nil, ErrInvalidDecision
	}

	item, err := s.queue.FindByID(itemID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQueueItemNotFound
		}
		return nil, err
	}

	now := time.Now()
	item.Status = decision
	item.HandledBy = &adminID
	item.HandledAt = &now
	if notes != "" {
		item.Notes = notes
	}
	if err := s.queue.Resolve(item); err != nil {
		return nil, err
	}

	ref := entity.Ref{Type: entity.Type(item.EntityType), ID: item.EntityID}
	snapshot, hidden := s.cascadeVisibility(ref, decision, action)

	if !isActiveDecision(decision) {
		s.closePendingReports(ref, decision, hidden, snapshot)
	}

	metrics.ModerationDecisionsTotal.WithLabelValues(decision).Inc()
	slog.Info("moderation queue item handled",
		"item_id", item.ID, "entity", ref.String(), "decision", decision, "action", action, "admin_id", adminID)
	return item, nil
}

// cascadeVisibility applies the entity-status side effect of a decision.
// It returns the entity snapshot taken before the mutation (nil when the
// entity no longer exists; tolerated, the content may have been deleted
// mid-flow) and whether the decision hid the content.
func (s *ModerationService) cascadeVisibility(ref entity.Ref, decision, action string) (*entity.Snapshot, bool) {
	store, ok := s.entities.Store(ref.Type)
	if !ok {
		return nil, false
	}
	snapshot, err := store.Find(ref.ID)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			slog.Error("entity lookup failed during cascade", "entity", ref.String(), "error", err)
		}
		return nil, false
	}

	switch {
	case decision == models.QueueStatusRemoved:
		if err := store.UpdateStatus(ref.ID, models.ContentStatusDeleted); err != nil {
			slog.Error("entity status cascade failed", "entity", ref.String(), "error", err)
		}
	case decision == models.QueueStatusApproved && ref.Type == entity.TypeResource:
		if action == ActionHide {
			if err := store.UpdateStatus(ref.ID, models.ContentStatusHidden); err != nil {
				slog.Error("entity status cascade failed", "entity", ref.String(), "error", err)
			}
			return snapshot, true
		}
		// Cleared without hiding: lift a previous hide.
		if snapshot.Status == models.ContentStatusHidden {
			if err := store.UpdateStatus(ref.ID, models.ContentStatusNormal); err != nil {
				slog.Error("entity status cascade failed", "entity", ref.String(), "error", err)
			}
		}
	}
	return snapshot, false
}

// closePendingReports bulk-handles every pending report on ref and notifies
// the distinct reporters, plus the content owner when the content was hidden
// or removed.
func (s *ModerationService) closePendingReports(ref entity.Ref, decision string, hidden bool, snapshot *entity.Snapshot) {
	pending, err := s.reports.ListPendingByEntity(ref)
	if err != nil {
		slog.Error("pending report lookup failed", "entity", ref.String(), "error", err)
		return
	}
	if err := s.reports.MarkPendingHandled(ref); err != nil {
		slog.Error("bulk report resolution failed", "entity", ref.String(), "error", err)
		return
	}

	removed := decision == models.QueueStatusRemoved

	seen := make(map[uint64]struct{}, len(pending))
	notifications := make([]NotificationInput, 0, len(pending))
	for _, report := range pending {
		if _, dup := seen[report.ReporterID]; dup {
			continue
		}
		seen[report.ReporterID] = struct{}{}
		notifications = append(notifications, NotificationInput{
			UserID:  report.ReporterID,
			Type:    models.NotificationTypeSystem,
			Title:   "Your report has been handled",
			Content: reporterOutcomeMessage(removed, hidden),
			Ref:     &ref,
		})
	}
	s.notifier.NotifyAll(notifications)

	if (removed || hidden) && snapshot != nil && snapshot.OwnerID != 0 {
		s.notifier.Notify(ownerOutcomeNotification(ref, snapshot.OwnerID, removed))
	}
}

func reporterOutcomeMessage(removed, hidden bool) string {
	switch {
	case removed:
		return "The content you reported has been removed"
	case hidden:
		return "The content you reported has been hidden"
	default:
		return "The content you reported has been reviewed"
	}
}

func ownerOutcomeNotification(ref entity.Ref, ownerID uint64, removed bool) NotificationInput {
	name := ref.Type.DisplayName()
	verb := "hidden"
	if removed {
		verb = "removed"
	}

	notifType := models.NotificationTypeComment
	switch ref.Type {
	case entity.TypeResource:
		notifType = models.NotificationTypeResource
	case entity.TypeReview:
		notifType = models.NotificationTypeReview
	}

	return NotificationInput{
		UserID:  ownerID,
		Type:    notifType,
		Title:   fmt.Sprintf("Your %s has been %s", name, verb),
		Content: fmt.Sprintf("Your %s was %s after being reported for a violation", name, verb),
		Ref:     &ref,
	}
}

// List returns a page of queue items. Sort fields outside the whitelist fall
// back to report_count.
func (s *ModerationService) List(f repository.QueueFilter) ([]models.ModerationQueueItem, int64, error) {
	switch f.SortBy {
	case "report_count", "created_at", "updated_at":
	default:
		f.SortBy = "report_count"
	}
	if f.SortOrder != "ASC" {
		f.SortOrder = "DESC"
	}
	return s.queue.List(f)
}

func (s *ModerationService) Get(id uint64) (*models.ModerationQueueItem, error) {
	item, err := s.queue.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrQueueItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Detail returns the queue item, its full report history and the projected
// entity. A vanished entity yields a nil projection, not an error.
func (s *ModerationService) Detail(id uint64) (*QueueDetail, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	ref := entity.Ref{Type: entity.Type(item.EntityType), ID: item.EntityID}
	reports, err := s.reports.ListByEntity(ref)
	if err != nil {
		return nil, err
	}

	var detail *entity.Detail
	if store, ok := s.entities.Store(ref.Type); ok {
		detail, err = store.ProjectDetail(ref.ID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
	}

	return &QueueDetail{Item: item, Reports: reports, Entity: detail}, nil
}

// DeleteItem removes a queue item, first bulk-resolving the entity's pending
// reports so the ledger is never left pointing at a vanished queue row.
func (s *ModerationService) DeleteItem(id uint64) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	ref := entity.Ref{Type: entity.Type(item.EntityType), ID: item.EntityID}
	if err := s.reports.MarkPendingHandled(ref); err != nil {
		return err
	}

	slog.Info("moderation queue item deleted", "item_id", id, "entity", ref.String())
	return s.queue.Delete(id)
}

// Stats aggregates queue items by status and reports by status.
func (s *ModerationService) Stats() (*QueueStats, error) {
	stats := &QueueStats{
		Queue:   make(map[string]int64, 5),
		Reports: make(map[string]int64, 3),
	}

	for _, status := range []string{
		models.QueueStatusPending, models.QueueStatusPendingReview,
		models.QueueStatusApproved, models.QueueStatusRejected, models.QueueStatusRemoved,
	} {
		count, err := s.queue.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		stats.Queue[status] = count
	}

	var total int64
	for _, status := range []string{models.ReportStatusPending, models.ReportStatusHandled} {
		count, err := s.reports.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		stats.Reports[status] = count
		total += count
	}
	stats.Reports["total"] = total
	return stats, nil
}
