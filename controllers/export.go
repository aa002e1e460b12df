// controllers/export.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"capster-board/services"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

type Exporter interface {
	ExportToday(ctx context.Context) (*services.ExportResult, error)
	Overview(ctx context.Context) (*services.ExportOverview, error)
	SheetRows(ctx context.Context) ([][]string, error)
	ClearSheet(ctx context.Context) error
}

type ExportController struct {
	exporter Exporter
}

func NewExportController(exporter Exporter) *ExportController {
	return &ExportController{exporter: exporter}
}

// ExportToday pushes today's visits that are not in the sheet yet. An
// unconfigured sheet is reported in the body, not as an error.
func (ec *ExportController) ExportToday(c *gin.Context) {
	result, err := ec.exporter.ExportToday(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExportSummary compares today's bookings with the sheet
func (ec *ExportController) GetExportSummary(c *gin.Context) {
	overview, err := ec.exporter.Overview(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetSheet dumps the export range as the sheet holds it
func (ec *ExportController) GetSheet(c *gin.Context) {
	rows, err := ec.exporter.SheetRows(c.Request.Context())
	if err != nil {
		respondSheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

// ClearSheet empties the export range
func (ec *ExportController) ClearSheet(c *gin.Context) {
	if err := ec.exporter.ClearSheet(c.Request.Context()); err != nil {
		respondSheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sheet cleared successfully"})
}

func respondSheetError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSheetsNotConfigured) {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
}
