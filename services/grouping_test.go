package services

import (
	"testing"

	"capster-board/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAppointmentsMergesSameVisit(t *testing.T) {
	rows := []models.Appointment{
		appointment(1, johnDoe, "10:00:00", "Haircut", budi),
		appointment(2, johnDoe, "10:00:00", "Shave", budi),
		appointment(3, siti, "10:30:00", "Haircut", andi),
	}

	groups := GroupAppointments(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"Haircut", "Shave"}, groups[0].Treatments)
	assert.Equal(t, []int64{1, 2}, groups[0].AppointmentIDs)
	assert.Equal(t, "John Doe", groups[0].CustomerName())
	assert.Equal(t, "Budi", groups[0].CapsterName())
	assert.Equal(t, []string{"Haircut"}, groups[1].Treatments)
}

func TestGroupAppointmentsKeepsFirstSeenOrder(t *testing.T) {
	rows := []models.Appointment{
		appointment(1, siti, "09:00:00", "Shave", andi),
		appointment(2, johnDoe, "10:00:00", "Haircut", budi),
		appointment(3, siti, "09:00:00", "Haircut", andi),
	}

	groups := GroupAppointments(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, "Siti Aminah", groups[0].CustomerName())
	assert.Equal(t, []string{"Shave", "Haircut"}, groups[0].Treatments)
	assert.Equal(t, "John Doe", groups[1].CustomerName())
}

func TestGroupAppointmentsSplitsOnTimeOrCapster(t *testing.T) {
	rows := []models.Appointment{
		appointment(1, johnDoe, "10:00:00", "Haircut", budi),
		appointment(2, johnDoe, "11:00:00", "Haircut", budi),
		appointment(3, johnDoe, "10:00:00", "Shave", andi),
	}
	assert.Len(t, GroupAppointments(rows), 3)
}

func TestGroupAppointmentsTreatmentlessRowStillFormsVisit(t *testing.T) {
	rows := []models.Appointment{
		appointment(1, johnDoe, "10:00:00", "", budi),
		appointment(2, johnDoe, "10:00:00", "Shave", budi),
	}

	groups := GroupAppointments(rows)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Shave"}, groups[0].Treatments)
	assert.Equal(t, []int64{1, 2}, groups[0].AppointmentIDs)
}

func TestGroupAppointmentsDropsIncompleteRows(t *testing.T) {
	rows := []models.Appointment{
		appointment(1, nil, "10:00:00", "Haircut", budi),
		appointment(2, johnDoe, "", "Haircut", budi),
		appointment(3, johnDoe, "10:00:00", "Haircut", nil),
		appointment(4, johnDoe, "10:00:00", "Haircut", budi),
	}

	groups := GroupAppointments(rows)

	require.Len(t, groups, 1)
	assert.Equal(t, []int64{4}, groups[0].AppointmentIDs)
}

func TestGroupAppointmentsEmpty(t *testing.T) {
	groups := GroupAppointments(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestVisitKey(t *testing.T) {
	key, ok := VisitKey(appointment(1, johnDoe, "10:00:00", "Haircut", budi))
	assert.True(t, ok)
	assert.Equal(t, "7_10:00:00_1", key)

	_, ok = VisitKey(appointment(1, nil, "10:00:00", "Haircut", budi))
	assert.False(t, ok)
}
