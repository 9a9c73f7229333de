package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/repository"
)

type fakeEmployeeRepo struct {
	mu       sync.Mutex
	items    map[string]domain.Employee
	err      error
	allCalls int
}

func newFakeEmployeeRepo(seed ...domain.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{items: map[string]domain.Employee{}}
	for _, e := range seed {
		r.items[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, e.Email) {
			return repository.ErrDuplicate
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.items[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, e := range r.items {
		if strings.EqualFold(e.Email, email) {
			out := e
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ repository.EmployeeFilter) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Employee, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeEmployeeRepo) fullReads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allCalls
}

func (r *fakeEmployeeRepo) All(context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Employee, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeAttendanceRepo struct {
	items map[string]domain.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{items: map[string]domain.AttendanceRecord{}}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, rec *domain.AttendanceRecord) error {
	for _, existing := range r.items {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return repository.ErrDuplicate
		}
	}
	rec.ID = uuid.NewString()
	r.items[rec.ID] = *rec
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, rec *domain.AttendanceRecord) error {
	if _, ok := r.items[rec.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[rec.ID] = *rec
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (*domain.AttendanceRecord, error) {
	rec, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rec, nil
}

func (r *fakeAttendanceRepo) List(context.Context, repository.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	out := []domain.AttendanceRecord{}
	for _, rec := range r.items {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountByStatus(_ context.Context, date time.Time) (map[domain.AttendanceStatus]int, error) {
	counts := map[domain.AttendanceStatus]int{}
	for _, rec := range r.items {
		if rec.Date.Equal(date) {
			counts[rec.Status]++
		}
	}
	return counts, nil
}

type fakePerformanceRepo struct {
	items map[string]domain.PerformanceReview
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{items: map[string]domain.PerformanceReview{}}
}

func (r *fakePerformanceRepo) Create(_ context.Context, review *domain.PerformanceReview) error {
	review.ID = uuid.NewString()
	r.items[review.ID] = *review
	return nil
}

func (r *fakePerformanceRepo) Update(_ context.Context, review *domain.PerformanceReview) error {
	if _, ok := r.items[review.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[review.ID] = *review
	return nil
}

func (r *fakePerformanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakePerformanceRepo) GetByID(_ context.Context, id string) (*domain.PerformanceReview, error) {
	review, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &review, nil
}

func (r *fakePerformanceRepo) List(context.Context, repository.PerformanceFilter) ([]domain.PerformanceReview, error) {
	out := []domain.PerformanceReview{}
	for _, review := range r.items {
		out = append(out, review)
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	items map[string]domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{items: map[string]domain.Department{}}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d *domain.Department) error {
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, d.Name) {
			return repository.ErrDuplicate
		}
	}
	d.ID = uuid.NewString()
	r.items[d.ID] = *d
	return nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, d *domain.Department) error {
	if _, ok := r.items[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[d.ID] = *d
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context, activeOnly bool) ([]domain.Department, error) {
	out := []domain.Department{}
	for _, d := range r.items {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type staticSource []domain.Employee

func (s staticSource) Employees(context.Context) ([]domain.Employee, error) {
	return s, nil
}
