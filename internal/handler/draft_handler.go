package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-import/internal/domain"
	"catalog-import/internal/logger"
	"catalog-import/internal/middleware"
	"catalog-import/internal/service"
	"catalog-import/internal/validator"
)

// DraftHandler handles draft review and export requests.
type DraftHandler struct {
	pipeline service.PipelineServiceInterface
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(pipeline service.PipelineServiceInterface) *DraftHandler {
	return &DraftHandler{pipeline: pipeline}
}

// DraftListResponse is one page of drafts.
type DraftListResponse struct {
	Drafts    []domain.ProductDraft `json:"drafts"`
	NextAfter *int                  `json:"next_after,omitempty"`
}

// ListDrafts handles GET /api/v1/imports/:id/drafts
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	query, err := draftQueryFrom(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	drafts, err := h.pipeline.ListDrafts(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	response := DraftListResponse{Drafts: drafts}
	if query.Limit > 0 && len(drafts) == query.Limit {
		next := drafts[len(drafts)-1].RowIndex
		response.NextAfter = &next
	}
	c.JSON(http.StatusOK, response)
}

// GetDraft handles GET /api/v1/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	details, err := h.pipeline.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, details)
}

// PatchDraft handles PATCH /api/v1/drafts/:id
func (h *DraftHandler) PatchDraft(c *gin.Context) {
	var patch validator.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	draft, err := h.pipeline.PatchDraft(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ExportDrafts handles GET /api/v1/imports/:id/drafts/export
func (h *DraftHandler) ExportDrafts(c *gin.Context) {
	jobID := c.Param("id")
	format := c.DefaultQuery("format", service.FormatCSV)
	requestID := middleware.GetRequestID(c)

	var contentType string
	switch format {
	case service.FormatCSV:
		contentType = "text/csv"
	case service.FormatNDJSON:
		contentType = "application/x-ndjson"
	default:
		badRequest(c, "format must be csv or ndjson")
		return
	}

	writer := &ginStreamWriter{
		c:           c,
		contentType: contentType,
		filename:    fmt.Sprintf("drafts_%s.%s", jobID, format),
	}

	count, err := h.pipeline.StreamDrafts(c.Request.Context(), jobID, format, writer)
	if err != nil {
		if !writer.started {
			respondError(c, err, nil)
			return
		}
		// Headers are already sent; the truncated body is all the client gets.
		logger.WithRequestID(requestID).Error("Draft export interrupted",
			"job_id", jobID, "records", count, "error", err)
		return
	}
	writer.start()

	logger.WithRequestID(requestID).Info("Drafts exported", "job_id", jobID, "format", format, "records", count)
}

// ginStreamWriter writes export chunks straight to the response. Headers are sent
// with the first chunk so an early failure can still be answered with an error body.
type ginStreamWriter struct {
	c           *gin.Context
	contentType string
	filename    string
	started     bool
}

// Write writes data to the response.
func (w *ginStreamWriter) Write(data []byte) error {
	w.start()
	_, err := w.c.Writer.Write(data)
	return err
}

func (w *ginStreamWriter) start() {
	if w.started {
		return
	}
	w.c.Header("Content-Type", w.contentType)
	w.c.Header("Content-Disposition", "attachment; filename="+w.filename)
	w.c.Status(http.StatusOK)
	w.started = true
}

// Flush flushes the response buffer.
func (w *ginStreamWriter) Flush() {
	w.start()
	w.c.Writer.Flush()
}

func draftQueryFrom(c *gin.Context) (service.DraftQuery, error) {
	var query service.DraftQuery
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if !domain.IsValidDraftStatus(s) {
				return query, fmt.Errorf("invalid status: %s", s)
			}
			query.Statuses = append(query.Statuses, domain.DraftStatus(s))
		}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return query, errors.New("limit must be a positive integer")
		}
		query.Limit = limit
	}
	if raw := c.Query("after"); raw != "" {
		after, err := strconv.Atoi(raw)
		if err != nil || after < 0 {
			return query, errors.New("after must be a non-negative integer")
		}
		query.AfterRowIndex = after
	}
	return query, nil
}
