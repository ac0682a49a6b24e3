package repository

import (
	"errors"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

// QueueFilter narrows queue listings.
type QueueFilter struct {
	Status     string
	EntityType string
	SortBy     string // report_count | created_at | updated_at
	SortOrder  string // ASC | DESC
	Page       int
	Limit      int
}

type QueueRepository interface {
	// FindOrCreate returns the queue item for ref, creating it with the
	// given defaults when absent. The second result is true when a new row
	// was created. Safe against concurrent creators: the unique index on
	// (entity_type, entity_id) decides the race and the loser re-reads.
	FindOrCreate(ref entity.Ref, defaults models.ModerationQueueItem) (*models.ModerationQueueItem, bool, error)
	FindByID(id uint64) (*models.ModerationQueueItem, error)
	// FindByEntity returns ErrRecordNotFound when no item exists for ref.
	FindByEntity(ref entity.Ref) (*models.ModerationQueueItem, error)
	// ApplyEscalation bumps report_count atomically and sets the new status.
	ApplyEscalation(id uint64, delta int, status string) error
	UpdateStatus(id uint64, status string) error
	UpdateNotes(id uint64, notes string) error
	Resolve(item *models.ModerationQueueItem) error
	List(f QueueFilter) ([]models.ModerationQueueItem, int64, error)
	CountByStatus(status string) (int64, error)
	Delete(id uint64) error
}

type queueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) FindOrCreate(ref entity.Ref, defaults models.ModerationQueueItem) (*models.ModerationQueueItem, bool, error) {
	var item models.ModerationQueueItem
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", ref.Type, ref.ID).
		First(&item).Error
	if err == nil {
		return &item, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	defaults.EntityType = string(ref.Type)
	defaults.EntityID = ref.ID
	if createErr := r.db.Create(&defaults).Error; createErr != nil {
		// Lost the insert race: the unique index rejected us, so the row
		// must exist now.
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			err = r.db.
				Where("entity_type = ? AND entity_id = ?", ref.Type, ref.ID).
				First(&item).Error
			if err != nil {
				return nil, false, err
			}
			return &item, false, nil
		}
		return nil, false, createErr
	}
	return &defaults, true, nil
}

func (r *queueRepository) FindByID(id uint64) (*models.ModerationQueueItem, error) {
	var item models.ModerationQueueItem
	if err := r.db.Preload("Handler").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *queueRepository) FindByEntity(ref entity.Ref) (*models.ModerationQueueItem, error) {
	var item models.ModerationQueueItem
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", ref.Type, ref.ID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *queueRepository) ApplyEscalation(id uint64, delta int, status string) error {
	return r.db.Model(&models.ModerationQueueItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"report_count": gorm.Expr("report_count + ?", delta),
			"status":       status,
		}).Error
}

func (r *queueRepository) UpdateStatus(id uint64, status string) error {
	return r.db.Model(&models.ModerationQueueItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *queueRepository) UpdateNotes(id uint64, notes string) error {
	return r.db.Model(&models.ModerationQueueItem{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

func (r *queueRepository) Resolve(item *models.ModerationQueueItem) error {
	return r.db.Model(item).
		Select("status", "handled_by", "handled_at", "notes").
		Updates(map[string]interface{}{
			"status":     item.Status,
			"handled_by": item.HandledBy,
			"handled_at": item.HandledAt,
			"notes":      item.Notes,
		}).Error
}

func (r *queueRepository) List(f QueueFilter) ([]models.ModerationQueueItem, int64, error) {
	query := r.db.Model(&models.ModerationQueueItem{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.EntityType != "" {
		query = query.Where("entity_type = ?", f.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.ModerationQueueItem
	err := query.Preload("Handler").
		Order(f.SortBy + " " + f.SortOrder).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *queueRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ModerationQueueItem{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *queueRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.ModerationQueueItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
