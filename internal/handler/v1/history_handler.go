package v1

import (
	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	"github.com/rxtrack/rxtrack-api/internal/service"
)

// HistoryHandler exposes the archive. Same GET/POST/PUT surface as
// prescriptions; no delete endpoints.
type HistoryHandler struct {
	*RecordHandler[record.History, *record.History]
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		RecordHandler: newRecordHandler(svc.RecordService, "History"),
	}
}
