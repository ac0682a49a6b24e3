// Package repository holds the persistence interfaces for the moderation
// core and their GORM implementations. The report ledger and moderation
// queue are written only through these interfaces.
package repository

import (
	"errors"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound is the package-level not-found sentinel, aliased so
// services do not import gorm directly.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ReportFilter narrows admin report listings. Zero values mean "no filter".
type ReportFilter struct {
	Status     string
	EntityType string
	Reason     string
	ReporterID uint64
	Page       int
	Limit      int
}

type ReportRepository interface {
	Create(r *models.Report) error
	FindByID(id uint64) (*models.Report, error)
	// FindPending returns the reporter's pending report against ref, or
	// ErrRecordNotFound.
	FindPending(reporterID uint64, ref entity.Ref) (*models.Report, error)
	List(f ReportFilter) ([]models.Report, int64, error)
	ListByReporter(reporterID uint64, page, limit int) ([]models.Report, int64, error)
	// ListByEntity returns the full report history for an entity, newest
	// first, reporters preloaded.
	ListByEntity(ref entity.Ref) ([]models.Report, error)
	ListPendingByEntity(ref entity.Ref) ([]models.Report, error)
	UpdateStatus(id uint64, status string) error
	// MarkPendingHandled bulk-transitions every pending report on ref.
	MarkPendingHandled(ref entity.Ref) error
	CountByStatus(status string) (int64, error)
	Delete(id uint64) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByID(id uint64) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("Reporter").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindPending(reporterID uint64, ref entity.Ref) (*models.Report, error) {
	var report models.Report
	err := r.db.
		Where("reporter_id = ? AND entity_type = ? AND entity_id = ? AND status = ?",
			reporterID, ref.Type, ref.ID, models.ReportStatusPending).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(f ReportFilter) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.EntityType != "" {
		query = query.Where("entity_type = ?", f.EntityType)
	}
	if f.Reason != "" {
		query = query.Where("reason = ?", f.Reason)
	}
	if f.ReporterID != 0 {
		query = query.Where("reporter_id = ?", f.ReporterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.Preload("Reporter").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) ListByReporter(reporterID uint64, page, limit int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{}).Where("reporter_id = ?", reporterID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) ListByEntity(ref entity.Ref) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", ref.Type, ref.ID).
		Preload("Reporter").
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) ListPendingByEntity(ref entity.Ref) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("entity_type = ? AND entity_id = ? AND status = ?",
			ref.Type, ref.ID, models.ReportStatusPending).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) UpdateStatus(id uint64, status string) error {
	result := r.db.Model(&models.Report{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportRepository) MarkPendingHandled(ref entity.Ref) error {
	return r.db.Model(&models.Report{}).
		Where("entity_type = ? AND entity_id = ? AND status = ?",
			ref.Type, ref.ID, models.ReportStatusPending).
		Update("status", models.ReportStatusHandled).Error
}

func (r *reportRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *reportRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the repository not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
