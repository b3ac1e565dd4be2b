package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
)

const (
	minPatientAge = 0
	maxPatientAge = 130
)

// RecordService is the access layer over a record store. The two concrete
// services differ only in identifier strategy: with autoID the store assigns
// ids, without it the caller-supplied id is persisted as-is (creating or
// replacing the row under that id).
type RecordService[T any, PT record.Entity[T]] struct {
	repo     record.Repository[T]
	resource string
	autoID   bool
	log      *zap.Logger
}

func newRecordService[T any, PT record.Entity[T]](repo record.Repository[T], resource string, autoID bool, log *zap.Logger) *RecordService[T, PT] {
	return &RecordService[T, PT]{repo: repo, resource: resource, autoID: autoID, log: log}
}

func (s *RecordService[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	if err := validateFields(PT(rec).RecordFields()); err != nil {
		return nil, err
	}

	var err error
	if s.autoID {
		PT(rec).SetID(0)
		err = s.repo.Insert(ctx, rec)
	} else {
		err = s.repo.Upsert(ctx, rec)
	}
	if err != nil {
		s.log.Error("failed to create record", zap.String("resource", s.resource), zap.Error(err))
		return nil, fmt.Errorf("creating %s: %w", s.resource, err)
	}

	s.log.Info("record created",
		zap.String("resource", s.resource),
		zap.Int("id", PT(rec).GetID()),
	)
	return rec, nil
}

// Update replaces the record under id with the supplied fields. The id from
// the path wins over whatever the body carried; a missing row is created
// under that id.
func (s *RecordService[T, PT]) Update(ctx context.Context, id int, rec *T) (*T, error) {
	if err := validateFields(PT(rec).RecordFields()); err != nil {
		return nil, err
	}

	PT(rec).SetID(id)
	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Error("failed to update record",
			zap.String("resource", s.resource),
			zap.Int("id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("updating %s %d: %w", s.resource, id, err)
	}

	s.log.Info("record updated", zap.String("resource", s.resource), zap.Int("id", id))
	return rec, nil
}

func (s *RecordService[T, PT]) Get(ctx context.Context, id int) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RecordService[T, PT]) ListAll(ctx context.Context) ([]T, error) {
	return s.repo.ListAll(ctx)
}

func (s *RecordService[T, PT]) GetByName(ctx context.Context, name string) ([]T, error) {
	return s.repo.FindByPatientName(ctx, name)
}

func (s *RecordService[T, PT]) GetByGender(ctx context.Context, gender string) ([]T, error) {
	return s.repo.FindByPatientGender(ctx, gender)
}

func (s *RecordService[T, PT]) GetByDateRange(ctx context.Context, start, end record.Date) ([]T, error) {
	return s.repo.FindByDateRange(ctx, start, end)
}

func validateFields(f *record.Fields) error {
	var errs []string

	if f.PrescriptionDate.IsZero() {
		errs = append(errs, "prescriptionDate is required")
	}
	if strings.TrimSpace(f.PatientName) == "" {
		errs = append(errs, "patientName is required")
	}
	switch {
	case f.PatientAge == nil:
		errs = append(errs, "patientAge is required")
	case *f.PatientAge < minPatientAge || *f.PatientAge > maxPatientAge:
		errs = append(errs, fmt.Sprintf("patientAge must be between %d and %d", minPatientAge, maxPatientAge))
	}
	if strings.TrimSpace(f.PatientGender) == "" {
		errs = append(errs, "patientGender is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
