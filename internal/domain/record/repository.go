package record

import "context"

// Repository is the store contract shared by both entity types.
//
// Insert assigns a fresh id; Upsert persists the record under the id it
// already carries, creating or replacing as needed. Range operations are
// inclusive on both bounds and filter on prescription_date; an inverted
// range (start after end) matches nothing. Delete and DeleteByDateRange are
// idempotent.
type Repository[T any] interface {
	Insert(ctx context.Context, rec *T) error
	Upsert(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id int) (*T, error)
	ListAll(ctx context.Context) ([]T, error)
	FindByPatientName(ctx context.Context, name string) ([]T, error)
	FindByPatientGender(ctx context.Context, gender string) ([]T, error)
	FindByDateRange(ctx context.Context, start, end Date) ([]T, error)
	Delete(ctx context.Context, id int) error
	DeleteByDateRange(ctx context.Context, start, end Date) error
	CountByDate(ctx context.Context, start, end Date) ([]DayWiseCount, error)
}
