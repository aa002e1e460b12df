package services

import (
	"fmt"

	"capster-board/models"
)

// GroupedAppointment is one visit: every appointment row that shares the
// customer, time and capster, with the treatment names in booking order.
type GroupedAppointment struct {
	Key            string           `json:"key"`
	Date           models.Date      `json:"date"`
	Time           models.ClockTime `json:"time"`
	Customer       *models.Customer `json:"customer"`
	Capster        *models.Capster  `json:"capster"`
	Treatments     []string         `json:"treatments"`
	AppointmentIDs []int64          `json:"appointment_ids"`
}

func (g GroupedAppointment) CustomerName() string {
	if g.Customer == nil {
		return ""
	}
	return g.Customer.Name
}

func (g GroupedAppointment) CustomerWhatsApp() string {
	if g.Customer == nil {
		return ""
	}
	return g.Customer.WhatsApp
}

func (g GroupedAppointment) CapsterName() string {
	if g.Capster == nil {
		return ""
	}
	return g.Capster.Name
}

// VisitKey identifies the visit a row belongs to by customer id, time and
// capster id. Rows without a customer, a time or a capster have no visit and
// report false.
func VisitKey(a models.Appointment) (string, bool) {
	if a.CustomerID == 0 || a.Time == "" || a.CapsterID == 0 {
		return "", false
	}
	return fmt.Sprintf("%d_%s_%d", a.CustomerID, a.Time, a.CapsterID), true
}

// GroupAppointments folds treatment rows into visits, keeping the order in
// which each visit was first seen. Display and export both go through here.
func GroupAppointments(rows []models.Appointment) []GroupedAppointment {
	index := make(map[string]int, len(rows))
	groups := make([]GroupedAppointment, 0, len(rows))

	for _, row := range rows {
		key, ok := VisitKey(row)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			groups = append(groups, GroupedAppointment{
				Key:        key,
				Date:       row.Date,
				Time:       row.Time,
				Customer:   row.Customer,
				Capster:    row.Capster,
				Treatments: []string{},
			})
			i = len(groups) - 1
			index[key] = i
		}

		g := &groups[i]
		g.AppointmentIDs = append(g.AppointmentIDs, row.ID)
		if name := row.TreatmentName(); name != "" {
			g.Treatments = append(g.Treatments, name)
		}
	}
	return groups
}
