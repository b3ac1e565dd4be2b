package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
)

// RecordRepository is the gorm-backed store shared by Prescription and
// History. Every method runs as a single statement (or transaction), so the
// database's own atomicity is the only coordination needed.
type RecordRepository[T any] struct {
	db *gorm.DB
}

func NewRecordRepository[T any](db *gorm.DB) *RecordRepository[T] {
	return &RecordRepository[T]{db: db}
}

func (r *RecordRepository[T]) Insert(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Upsert persists the record under the id it carries, creating the row if
// absent and replacing every column if present.
func (r *RecordRepository[T]) Upsert(ctx context.Context, rec *T) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}
	return nil
}

func (r *RecordRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching record %d: %w", id, err)
	}
	return &rec, nil
}

func (r *RecordRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var recs []T
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return recs, nil
}

func (r *RecordRepository[T]) FindByPatientName(ctx context.Context, name string) ([]T, error) {
	var recs []T
	err := r.db.WithContext(ctx).
		Where("patient_name = ?", name).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("finding records by name: %w", err)
	}
	return recs, nil
}

func (r *RecordRepository[T]) FindByPatientGender(ctx context.Context, gender string) ([]T, error) {
	var recs []T
	err := r.db.WithContext(ctx).
		Where("patient_gender = ?", gender).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("finding records by gender: %w", err)
	}
	return recs, nil
}

// FindByDateRange is inclusive on both bounds and ordered ascending by
// prescription date. An inverted range matches nothing.
func (r *RecordRepository[T]) FindByDateRange(ctx context.Context, start, end record.Date) ([]T, error) {
	var recs []T
	err := r.db.WithContext(ctx).
		Where("prescription_date >= ? AND prescription_date <= ?", start, end).
		Order("prescription_date ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("finding records by date range: %w", err)
	}
	return recs, nil
}

// Delete is a no-op when the id does not exist.
func (r *RecordRepository[T]) Delete(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	return nil
}

func (r *RecordRepository[T]) DeleteByDateRange(ctx context.Context, start, end record.Date) error {
	err := r.db.WithContext(ctx).
		Where("prescription_date >= ? AND prescription_date <= ?", start, end).
		Delete(new(T)).Error
	if err != nil {
		return fmt.Errorf("deleting records in range: %w", err)
	}
	return nil
}

func (r *RecordRepository[T]) CountByDate(ctx context.Context, start, end record.Date) ([]record.DayWiseCount, error) {
	var counts []record.DayWiseCount
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Select("prescription_date AS date, COUNT(*) AS count").
		Where("prescription_date >= ? AND prescription_date <= ?", start, end).
		Group("prescription_date").
		Order("prescription_date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("counting records by date: %w", err)
	}
	return counts, nil
}
