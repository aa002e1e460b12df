package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"capster-board/models"
)

var testToday = time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testToday }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	johnDoe = &models.Customer{ID: 7, Name: "John Doe", WhatsApp: "+628123456789"}
	siti    = &models.Customer{ID: 8, Name: "Siti Aminah", WhatsApp: "081299990000"}
	budi    = &models.Capster{ID: 1, Name: "Budi"}
	andi    = &models.Capster{ID: 3, Name: "Andi"}
)

func appointment(id int64, customer *models.Customer, clock string, treatment string, capster *models.Capster) models.Appointment {
	a := models.Appointment{
		ID:   id,
		Date: "2026-10-15",
		Time: models.ClockTime(clock),
	}
	if customer != nil {
		a.CustomerID = customer.ID
		a.Customer = customer
	}
	if capster != nil {
		a.CapsterID = capster.ID
		a.Capster = capster
	}
	if treatment != "" {
		a.TreatmentID = id + 100
		a.Treatment = &models.Treatment{ID: id + 100, Name: treatment}
	}
	return a
}

type stubAppointments struct {
	rows    []models.Appointment
	err     error
	gotDate models.Date
	start   models.Date
	end     models.Date
}

func (s *stubAppointments) ListByDate(_ context.Context, date models.Date) ([]models.Appointment, error) {
	s.gotDate = date
	return s.rows, s.err
}

func (s *stubAppointments) ListBetween(_ context.Context, start, end models.Date) ([]models.Appointment, error) {
	s.start, s.end = start, end
	return s.rows, s.err
}

// fakeSheet keeps appended rows so consecutive exports see earlier writes.
type fakeSheet struct {
	rows      [][]string
	readErr   error
	appendErr error
	appends   [][][]interface{}
	reads     int
	clears    int
}

func (f *fakeSheet) Append(_ context.Context, rows [][]interface{}) (*SheetWriteResult, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.appends = append(f.appends, rows)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		f.rows = append(f.rows, cells)
	}
	return &SheetWriteResult{SpreadsheetID: "sheet-1", UpdatedRows: int64(len(rows)), UpdatedCells: int64(len(rows) * sheetColumns)}, nil
}

func (f *fakeSheet) Read(context.Context) ([][]string, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([][]string, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeSheet) Clear(context.Context) error {
	f.clears++
	f.rows = nil
	return nil
}
