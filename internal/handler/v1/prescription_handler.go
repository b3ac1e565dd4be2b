package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	"github.com/rxtrack/rxtrack-api/internal/service"
)

type PrescriptionHandler struct {
	*RecordHandler[record.Prescription, *record.Prescription]
	svc *service.PrescriptionService
}

func NewPrescriptionHandler(svc *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{
		RecordHandler: newRecordHandler(svc.RecordService, "Prescription"),
		svc:           svc,
	}
}

// Create goes through PrescriptionService rather than the embedded generic
// service so the creation counter is incremented.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var rec record.Prescription
	if !bindJSON(c, &rec) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &rec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.String(http.StatusOK, "Prescription with ID %d deleted successfully", id)
}

func (h *PrescriptionHandler) DeleteByDateRange(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteByDateRange(c.Request.Context(), start, end); err != nil {
		respondServiceError(c, err)
		return
	}
	c.String(http.StatusOK, "Prescriptions between %s and %s deleted successfully", start, end)
}

func (h *PrescriptionHandler) DayWiseReport(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	counts, err := h.svc.DayWiseCounts(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(counts))
}
