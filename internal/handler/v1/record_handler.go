package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	"github.com/rxtrack/rxtrack-api/internal/service"
)

// RecordHandler serves the read/write surface shared by both entities.
// Responses mirror the upstream API: bare JSON arrays and records on
// success, plain-text bodies for 404s and delete confirmations.
type RecordHandler[T any, PT record.Entity[T]] struct {
	svc      *service.RecordService[T, PT]
	resource string
}

func newRecordHandler[T any, PT record.Entity[T]](svc *service.RecordService[T, PT], resource string) *RecordHandler[T, PT] {
	return &RecordHandler[T, PT]{svc: svc, resource: resource}
}

// nonNil keeps empty results serializing as [] rather than null.
func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

func (h *RecordHandler[T, PT]) List(c *gin.Context) {
	recs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recs))
}

func (h *RecordHandler[T, PT]) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, record.ErrNotFound) {
		c.String(http.StatusNotFound, "%s with ID %d not found", h.resource, id)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecordHandler[T, PT]) GetByName(c *gin.Context) {
	recs, err := h.svc.GetByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recs))
}

func (h *RecordHandler[T, PT]) GetByGender(c *gin.Context) {
	recs, err := h.svc.GetByGender(c.Request.Context(), c.Query("gender"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recs))
}

func (h *RecordHandler[T, PT]) GetByDateRange(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	recs, err := h.svc.GetByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recs))
}

func (h *RecordHandler[T, PT]) Create(c *gin.Context) {
	var rec T
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

// Update replaces the full record; the path id wins over any id in the body.
func (h *RecordHandler[T, PT]) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rec T
	if !bindJSON(c, &rec) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &rec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
