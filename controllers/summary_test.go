package controllers

import (
	"context"
	"net/http"
	"testing"

	"capster-board/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReporter struct {
	period services.Period
}

func (s *stubReporter) GetSummary(_ context.Context, period services.Period) (*services.Summary, error) {
	s.period = period
	return &services.Summary{Period: period, TotalAppointments: 3}, nil
}

type stubMasters struct{}

func (stubMasters) List(context.Context) (*services.Masters, error) {
	return &services.Masters{Treatments: nil, Capsters: nil}, nil
}

func newReportRouter(reporter *stubReporter) *gin.Engine {
	sc := NewSummaryController(reporter)
	mc := NewMasterController(stubMasters{})
	r := gin.New()
	r.GET("/summary", sc.GetSummary)
	r.GET("/masters", mc.GetMasters)
	return r
}

func TestGetSummaryDefaultsToWeekly(t *testing.T) {
	reporter := &stubReporter{}
	w := perform(newReportRouter(reporter), http.MethodGet, "/summary", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.PeriodWeekly, reporter.period)
}

func TestGetSummaryMonthly(t *testing.T) {
	reporter := &stubReporter{}
	w := perform(newReportRouter(reporter), http.MethodGet, "/summary?type=monthly", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.PeriodMonthly, reporter.period)
}

func TestGetSummaryUnknownType(t *testing.T) {
	w := perform(newReportRouter(&stubReporter{}), http.MethodGet, "/summary?type=daily", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrUnknownPeriod.Error(), errorBody(t, w))
}

func TestGetMasters(t *testing.T) {
	w := perform(newReportRouter(&stubReporter{}), http.MethodGet, "/masters", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"treatments":null,"capsters":null}`, w.Body.String())
}
