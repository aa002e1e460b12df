package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"capster-board/metrics"
	"capster-board/models"
	"capster-board/utils"
)

const (
	sheetColumns        = 6
	sheetHeaderMarker   = "No"
	tableHeaderMarker   = "Column 1"
	identifierSeparator = "|"

	msgNothingToExport  = "Tidak ada appointment hari ini untuk di-export"
	msgNotConfigured    = "Google Sheets not configured"
	msgAlreadyExported  = "Semua appointment hari ini sudah di-export sebelumnya"
	msgExportedTemplate = "%d appointment baru berhasil di-export ke Google Sheets"
)

var sheetHeader = []interface{}{"No", "Tanggal", "Customer", "Whatsapp", "Treatment", "Capster"}

var ErrSheetsNotConfigured = errors.New("google sheets not configured")

type AppointmentReader interface {
	ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error)
}

// ExportResult reports one export run.
type ExportResult struct {
	Exported          []GroupedAppointment `json:"exported"`
	Message           string               `json:"message"`
	TotalAppointments int                  `json:"totalAppointments"`
	NewExports        int                  `json:"newExports"`
	ExistingInSheet   int                  `json:"existingInSheet"`
	Date              models.Date          `json:"date"`
	ExportResult      *SheetWriteResult    `json:"exportResult"`

	// Set only when the spreadsheet is not configured; Data then carries the
	// day's raw appointments instead.
	NotConfigured bool                 `json:"notConfigured,omitempty"`
	Data          []models.Appointment `json:"data,omitempty"`
}

type RecentAppointment struct {
	Time      models.ClockTime `json:"time"`
	Customer  string           `json:"customer"`
	Treatment string           `json:"treatment"`
}

type SheetEntry struct {
	Date      string `json:"date"`
	Customer  string `json:"customer"`
	WhatsApp  string `json:"whatsapp"`
	Treatment string `json:"treatment"`
}

// ExportOverview compares today's bookings with what the sheet holds.
type ExportOverview struct {
	Date                models.Date         `json:"date"`
	AppointmentsInDB    int                 `json:"appointmentsInDB"`
	AppointmentsInSheet int                 `json:"appointmentsInSheet"`
	SheetsConfigured    bool                `json:"sheetsConfigured"`
	RecentAppointments  []RecentAppointment `json:"recentAppointments"`
	RecentSheetEntries  []SheetEntry        `json:"recentSheetEntries"`
}

type ExportService struct {
	appointments AppointmentReader
	sheet        Spreadsheet
	metrics      *metrics.Metrics
	logger       *slog.Logger

	// Now resolves "today"; it should return time in the shop's timezone.
	Now func() time.Time
}

// NewExportService wires the exporter. sheet is nil when the spreadsheet is
// not configured, which turns exports into a reported no-op.
func NewExportService(appointments AppointmentReader, sheet Spreadsheet, m *metrics.Metrics, logger *slog.Logger) *ExportService {
	return &ExportService{
		appointments: appointments,
		sheet:        sheet,
		metrics:      m,
		logger:       logger,
		Now:          time.Now,
	}
}

func (s *ExportService) Configured() bool {
	return s.sheet != nil
}

// ExportToday appends today's visits that are not in the spreadsheet yet.
// Running it again without new bookings writes nothing.
func (s *ExportService) ExportToday(ctx context.Context) (*ExportResult, error) {
	date := models.DateOf(s.Now())

	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		s.metrics.ObserveExport("failed", 0)
		return nil, fmt.Errorf("load appointments for %s: %w", date, err)
	}
	if len(appointments) == 0 {
		s.metrics.ObserveExport("empty", 0)
		return &ExportResult{
			Exported: []GroupedAppointment{},
			Message:  msgNothingToExport,
			Date:     date,
		}, nil
	}
	if s.sheet == nil {
		s.metrics.ObserveExport("not_configured", 0)
		return &ExportResult{
			Exported:      []GroupedAppointment{},
			Message:       msgNotConfigured,
			Date:          date,
			NotConfigured: true,
			Data:          appointments,
		}, nil
	}

	groups := GroupAppointments(appointments)

	existing, err := s.sheet.Read(ctx)
	if err != nil {
		s.metrics.ObserveExport("failed", 0)
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	exported := existingIdentifiers(existing)
	existingCount := dataRowCount(existing)

	pending := make([]GroupedAppointment, 0, len(groups))
	for _, g := range groups {
		if _, done := exported[groupIdentifier(g)]; !done {
			pending = append(pending, g)
		}
	}

	rows := make([][]interface{}, 0, len(pending)+1)
	if len(existing) == 0 {
		rows = append(rows, sheetHeader)
	}
	for i, g := range pending {
		rows = append(rows, formatRow(existingCount+i+1, g))
	}

	var write *SheetWriteResult
	if len(rows) > 0 {
		write, err = s.sheet.Append(ctx, rows)
		if err != nil {
			s.metrics.ObserveExport("failed", 0)
			return nil, fmt.Errorf("append rows: %w", err)
		}
	}

	message := msgAlreadyExported
	status := "up_to_date"
	if len(pending) > 0 {
		message = fmt.Sprintf(msgExportedTemplate, len(pending))
		status = "exported"
	}
	s.metrics.ObserveExport(status, len(pending))
	s.logger.Info("export finished",
		"date", date,
		"total_appointments", len(groups),
		"new_exports", len(pending),
		"existing_in_sheet", existingCount,
	)

	return &ExportResult{
		Exported:          pending,
		Message:           message,
		TotalAppointments: len(groups),
		NewExports:        len(pending),
		ExistingInSheet:   existingCount,
		Date:              date,
		ExportResult:      write,
	}, nil
}

// Overview summarises today's bookings against the sheet. Sheet read errors
// are logged and the sheet is treated as empty.
func (s *ExportService) Overview(ctx context.Context) (*ExportOverview, error) {
	date := models.DateOf(s.Now())

	appointments, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load appointments for %s: %w", date, err)
	}

	var existing [][]string
	if s.sheet != nil {
		existing, err = s.sheet.Read(ctx)
		if err != nil {
			s.logger.Warn("read sheet for overview", "error", err)
			existing = nil
		}
	}

	overview := &ExportOverview{
		Date:                date,
		AppointmentsInDB:    len(appointments),
		AppointmentsInSheet: dataRowCount(existing),
		SheetsConfigured:    s.sheet != nil,
		RecentAppointments:  []RecentAppointment{},
		RecentSheetEntries:  []SheetEntry{},
	}
	for i := 0; i < len(appointments) && i < 3; i++ {
		a := appointments[i]
		overview.RecentAppointments = append(overview.RecentAppointments, RecentAppointment{
			Time:      a.Time,
			Customer:  a.CustomerName(),
			Treatment: a.TreatmentName(),
		})
	}

	data := existing
	if hasHeader(data) {
		data = data[1:]
	}
	if len(data) > 3 {
		data = data[len(data)-3:]
	}
	for _, row := range data {
		overview.RecentSheetEntries = append(overview.RecentSheetEntries, SheetEntry{
			Date:      cell(row, 1),
			Customer:  cell(row, 2),
			WhatsApp:  cell(row, 3),
			Treatment: cell(row, 4),
		})
	}
	return overview, nil
}

// SheetRows returns the raw content of the export range.
func (s *ExportService) SheetRows(ctx context.Context) ([][]string, error) {
	if s.sheet == nil {
		return nil, ErrSheetsNotConfigured
	}
	return s.sheet.Read(ctx)
}

// ClearSheet erases the export range. Meant for resetting a test sheet.
func (s *ExportService) ClearSheet(ctx context.Context) error {
	if s.sheet == nil {
		return ErrSheetsNotConfigured
	}
	if err := s.sheet.Clear(ctx); err != nil {
		return err
	}
	s.logger.Warn("export sheet cleared")
	return nil
}

// exportIdentifier is the key an exported visit is recognised by. The sheet
// has no time column, so two visits by the same customer with the same
// capster on one day share an identifier.
func exportIdentifier(date, customer, whatsapp, capster string) string {
	return strings.Join([]string{
		strings.TrimSpace(date),
		strings.TrimSpace(customer),
		utils.NormalizeWhatsApp(whatsapp),
		strings.TrimSpace(capster),
	}, identifierSeparator)
}

func groupIdentifier(g GroupedAppointment) string {
	return exportIdentifier(string(g.Date), g.CustomerName(), g.CustomerWhatsApp(), g.CapsterName())
}

func existingIdentifiers(rows [][]string) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) < sheetColumns || row[0] == "" || row[0] == sheetHeaderMarker || row[0] == tableHeaderMarker {
			continue
		}
		set[exportIdentifier(row[1], row[2], row[3], row[5])] = struct{}{}
	}
	return set
}

func hasHeader(rows [][]string) bool {
	return len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == sheetHeaderMarker
}

// dataRowCount is the number of rows excluding the header.
func dataRowCount(rows [][]string) int {
	if hasHeader(rows) {
		return len(rows) - 1
	}
	return len(rows)
}

func formatRow(seq int, g GroupedAppointment) []interface{} {
	return []interface{}{
		seq,
		string(g.Date),
		g.CustomerName(),
		utils.NormalizeWhatsApp(g.CustomerWhatsApp()),
		strings.Join(g.Treatments, ", "),
		g.CapsterName(),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
