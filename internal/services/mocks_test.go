package services

import (
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

type mockQueueRepo struct {
	mock.Mock
}

func (m *mockQueueRepo) FindOrCreate(ref entity.Ref, defaults models.ModerationQueueItem) (*models.ModerationQueueItem, bool, error) {
	args := m.Called(ref, defaults)
	item, _ := args.Get(0).(*models.ModerationQueueItem)
	return item, args.Bool(1), args.Error(2)
}

func (m *mockQueueRepo) FindByID(id uint64) (*models.ModerationQueueItem, error) {
	args := m.Called(id)
	item, _ := args.Get(0).(*models.ModerationQueueItem)
	return item, args.Error(1)
}

func (m *mockQueueRepo) FindByEntity(ref entity.Ref) (*models.ModerationQueueItem, error) {
	args := m.Called(ref)
	item, _ := args.Get(0).(*models.ModerationQueueItem)
	return item, args.Error(1)
}

func (m *mockQueueRepo) ApplyEscalation(id uint64, delta int, status string) error {
	return m.Called(id, delta, status).Error(0)
}

func (m *mockQueueRepo) UpdateStatus(id uint64, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockQueueRepo) UpdateNotes(id uint64, notes string) error {
	return m.Called(id, notes).Error(0)
}

func (m *mockQueueRepo) Resolve(item *models.ModerationQueueItem) error {
	return m.Called(item).Error(0)
}

func (m *mockQueueRepo) List(f repository.QueueFilter) ([]models.ModerationQueueItem, int64, error) {
	args := m.Called(f)
	items, _ := args.Get(0).([]models.ModerationQueueItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockQueueRepo) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQueueRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(r *models.Report) error {
	return m.Called(r).Error(0)
}

func (m *mockReportRepo) FindByID(id uint64) (*models.Report, error) {
	args := m.Called(id)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}

func (m *mockReportRepo) FindPending(reporterID uint64, ref entity.Ref) (*models.Report, error) {
	args := m.Called(reporterID, ref)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}

func (m *mockReportRepo) List(f repository.ReportFilter) ([]models.Report, int64, error) {
	args := m.Called(f)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) ListByReporter(reporterID uint64, page, limit int) ([]models.Report, int64, error) {
	args := m.Called(reporterID, page, limit)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) ListByEntity(ref entity.Ref) ([]models.Report, error) {
	args := m.Called(ref)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *mockReportRepo) ListPendingByEntity(ref entity.Ref) ([]models.Report, error) {
	args := m.Called(ref)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *mockReportRepo) UpdateStatus(id uint64, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockReportRepo) MarkPendingHandled(ref entity.Ref) error {
	return m.Called(ref).Error(0)
}

func (m *mockReportRepo) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Find(id uint64) (*entity.Snapshot, error) {
	args := m.Called(id)
	snapshot, _ := args.Get(0).(*entity.Snapshot)
	return snapshot, args.Error(1)
}

func (m *mockStore) UpdateStatus(id uint64, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockStore) ProjectDetail(id uint64) (*entity.Detail, error) {
	args := m.Called(id)
	detail, _ := args.Get(0).(*entity.Detail)
	return detail, args.Error(1)
}

// stubResolver maps each entity type to a fixed store.
type stubResolver struct {
	stores map[entity.Type]entity.Store
}

func (r stubResolver) Store(t entity.Type) (entity.Store, bool) {
	s, ok := r.stores[t]
	return s, ok
}

func resolverFor(t entity.Type, store entity.Store) stubResolver {
	return stubResolver{stores: map[entity.Type]entity.Store{t: store}}
}

// recordingNotifier captures dispatched notifications for assertions.
type recordingNotifier struct {
	single []NotificationInput
	batch  []NotificationInput
}

func (n *recordingNotifier) Notify(in NotificationInput) {
	n.single = append(n.single, in)
}

func (n *recordingNotifier) NotifyAll(ins []NotificationInput) {
	n.batch = append(n.batch, ins...)
}

// stubEscalator records Escalate calls made by the report flow.
type stubEscalator struct {
	ref   entity.Ref
	delta int
	calls int
	item  *models.ModerationQueueItem
	err   error
}

func (s *stubEscalator) Escalate(ref entity.Ref, delta int) (*models.ModerationQueueItem, error) {
	s.ref = ref
	s.delta = delta
	s.calls++
	return s.item, s.err
}
