package service

import (
	"go.uber.org/zap"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
)

// HistoryService serves the archive store. Ids come from the caller and are
// persisted as-is; creating under an existing id replaces that row. The
// archive exposes no delete operations.
type HistoryService struct {
	*RecordService[record.History, *record.History]
}

func NewHistoryService(repo record.Repository[record.History], log *zap.Logger) *HistoryService {
	return &HistoryService{
		RecordService: newRecordService[record.History, *record.History](repo, "history", false, log),
	}
}
