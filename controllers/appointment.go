// controllers/appointment.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"capster-board/models"
	"capster-board/repository"
	"capster-board/services"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

const (
	groupedPerPage    = 10
	groupedMaxPerPage = 100
)

type AppointmentStore interface {
	ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error)
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	Update(ctx context.Context, id int64, update repository.AppointmentUpdate) (*models.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type Booker interface {
	Book(ctx context.Context, req services.BookingRequest) ([]models.Appointment, error)
}

// CreateAppointmentInput accepts a single treatment_id, a treatment_ids list,
// or both.
type CreateAppointmentInput struct {
	CustomerID   int64   `json:"customer_id"`
	CapsterID    int64   `json:"capster_id"`
	TreatmentID  int64   `json:"treatment_id"`
	TreatmentIDs []int64 `json:"treatment_ids"`
}

// UpdateAppointmentInput carries the fields to change. ID is read only by
// PUT /appointments, where the id is not in the path.
type UpdateAppointmentInput struct {
	ID          *int64  `json:"id"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	CustomerID  *int64  `json:"customer_id"`
	TreatmentID *int64  `json:"treatment_id"`
	CapsterID   *int64  `json:"capster_id"`
}

type AppointmentController struct {
	store   AppointmentStore
	booking Booker
	now     func() time.Time
}

func NewAppointmentController(store AppointmentStore, booking Booker, now func() time.Time) *AppointmentController {
	return &AppointmentController{store: store, booking: booking, now: now}
}

// resolveDate reads ?date=, defaulting to today.
func (ac *AppointmentController) resolveDate(c *gin.Context) (models.Date, bool) {
	raw := c.Query("date")
	if raw == "" {
		return models.DateOf(ac.now()), true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return "", false
	}
	return date, true
}

// ListAppointments returns the raw treatment rows booked on a day
func (ac *AppointmentController) ListAppointments(c *gin.Context) {
	date, ok := ac.resolveDate(c)
	if !ok {
		return
	}

	appointments, err := ac.store.ListByDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.JSON(http.StatusOK, appointments)
}

// ListGroupedAppointments returns a day's visits, one entry per customer,
// time and capster, a page at a time
func (ac *AppointmentController) ListGroupedAppointments(c *gin.Context) {
	date, ok := ac.resolveDate(c)
	if !ok {
		return
	}

	appointments, err := ac.store.ListByDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	visits := services.GroupAppointments(appointments)
	page, meta := utils.Paginate(visits, utils.ParsePage(c, groupedPerPage, groupedMaxPerPage))

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"data":       page,
		"pagination": meta,
	})
}

// GetAppointment retrieves a specific appointment by ID
func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, err := ac.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CreateAppointment books a visit stamped with the current date and time
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	treatments := input.TreatmentIDs
	if input.TreatmentID > 0 {
		treatments = append([]int64{input.TreatmentID}, treatments...)
	}

	booked, err := ac.booking.Book(c.Request.Context(), services.BookingRequest{
		CustomerID:   input.CustomerID,
		CapsterID:    input.CapsterID,
		TreatmentIDs: treatments,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidBooking) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, booked)
}

// UpdateAppointment serves both PUT /appointments/:id and PUT /appointments
// with the id in the body
func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var id int64
	if c.Param("id") != "" {
		var ok bool
		if id, ok = pathID(c); !ok {
			return
		}
	} else if input.ID != nil {
		id = *input.ID
	}
	if id <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "appointment id is required")
		return
	}

	update := repository.AppointmentUpdate{
		CustomerID:  input.CustomerID,
		TreatmentID: input.TreatmentID,
		CapsterID:   input.CapsterID,
	}
	if input.Date != nil {
		date, err := models.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		update.Date = &date
	}
	if input.Time != nil {
		clock, err := models.ParseClock(*input.Time)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		update.Time = &clock
	}

	appointment, err := ac.store.Update(c.Request.Context(), id, update)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes one treatment row
func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := ac.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return 0, false
	}
	return id, true
}

// respondStoreError answers the by-id routes: a missing row is 404, anything
// the store rejected is passed through as 400.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	utils.RespondWithError(c, http.StatusBadRequest, err.Error())
}
