package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"recruit-tracker/internal/dto"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/response"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file downloads: the yearly grid and the interview calendar
type ExportHandler struct {
	yearlySvc    service.YearlyService
	interviewSvc service.InterviewService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(yearlySvc service.YearlyService, interviewSvc service.InterviewService) *ExportHandler {
	return &ExportHandler{yearlySvc: yearlySvc, interviewSvc: interviewSvc}
}

// YearlyCSV
// GET /api/v1/yearly/export.csv?year=&team_id=
func (h *ExportHandler) YearlyCSV(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.yearlySvc.ExportCSV(c.Request.Context(), actor, &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, filename, contentTypeCSV, buf.Bytes())
}

// YearlyXLSX
// GET /api/v1/yearly/export.xlsx?year=&team_id=
func (h *ExportHandler) YearlyXLSX(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	var q dto.YearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.yearlySvc.ExportXLSX(c.Request.Context(), actor, &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, filename, contentTypeXLSX, buf.Bytes())
}

// InterviewCalendar scheduled interviews the caller can see, as an iCalendar feed
// GET /api/v1/interviews/calendar.ics
func (h *ExportHandler) InterviewCalendar(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	data, filename, err := h.interviewSvc.Calendar(c.Request.Context(), actor)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, filename, contentTypeICS, data)
}

// sendFile writes an attachment download
func sendFile(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 21001, "failed to generate export file")
	default:
		handleCommonError(c, err)
	}
}
