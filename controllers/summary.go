// controllers/summary.go
package controllers

import (
	"context"
	"net/http"

	"capster-board/services"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

type SummaryReporter interface {
	GetSummary(ctx context.Context, period services.Period) (*services.Summary, error)
}

// SummaryController handles the weekly and monthly reports
type SummaryController struct {
	reporter SummaryReporter
}

func NewSummaryController(reporter SummaryReporter) *SummaryController {
	return &SummaryController{reporter: reporter}
}

// GetSummary reports bookings from the start of the week or month up to today
func (sc *SummaryController) GetSummary(c *gin.Context) {
	period, err := services.ParsePeriod(c.Query("type"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := sc.reporter.GetSummary(c.Request.Context(), period)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}
