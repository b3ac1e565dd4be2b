package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	"github.com/rxtrack/rxtrack-api/pkg/metrics"
)

// PrescriptionService serves the live prescription store. Ids are assigned
// by the store; deletion and the day-wise report exist only on this entity.
type PrescriptionService struct {
	*RecordService[record.Prescription, *record.Prescription]
	metrics *metrics.Collector
}

func NewPrescriptionService(repo record.Repository[record.Prescription], m *metrics.Collector, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		RecordService: newRecordService[record.Prescription, *record.Prescription](repo, "prescription", true, log),
		metrics:       m,
	}
}

func (s *PrescriptionService) Create(ctx context.Context, rec *record.Prescription) (*record.Prescription, error) {
	created, err := s.RecordService.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordsCreatedTotal.WithLabelValues("prescription").Inc()
	}
	return created, nil
}

// Delete removes a single prescription. Deleting an absent id succeeds
// silently.
func (s *PrescriptionService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordsDeletedTotal.Inc()
	}
	s.log.Info("prescription deleted", zap.Int("id", id))
	return nil
}

// DeleteByDateRange bulk-removes every prescription dated within the
// inclusive range, as one storage transaction.
func (s *PrescriptionService) DeleteByDateRange(ctx context.Context, start, end record.Date) error {
	if err := s.repo.DeleteByDateRange(ctx, start, end); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordsDeletedTotal.Inc()
	}
	s.log.Info("prescriptions deleted by date range",
		zap.String("start", start.String()),
		zap.String("end", end.String()),
	)
	return nil
}

// DayWiseCounts groups prescriptions in range by exact date and counts each
// group, ascending by date.
func (s *PrescriptionService) DayWiseCounts(ctx context.Context, start, end record.Date) ([]record.DayWiseCount, error) {
	counts, err := s.repo.CountByDate(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("building day-wise report: %w", err)
	}
	if s.metrics != nil {
		s.metrics.DayWiseReportsTotal.Inc()
	}
	return counts, nil
}
