package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/service"
)

// ReportHandler exposes the statistics endpoints.
type ReportHandler struct {
	Reports *service.ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(r *service.ReportService) *ReportHandler {
	return &ReportHandler{Reports: r}
}

// Overview returns the operational dashboard numbers.
func (h *ReportHandler) Overview(c echo.Context) error {
	o, err := h.Reports.Overview(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
