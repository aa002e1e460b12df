package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Spreadsheet is the external grid the day's visits are exported to.
type Spreadsheet interface {
	// Append adds rows after the existing content.
	Append(ctx context.Context, rows [][]interface{}) (*SheetWriteResult, error)
	// Read returns every row in the export range; a missing or empty sheet
	// reads as no rows.
	Read(ctx context.Context) ([][]string, error)
	Clear(ctx context.Context) error
}

type SheetWriteResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	TableRange    string `json:"tableRange,omitempty"`
	UpdatedRange  string `json:"updatedRange"`
	UpdatedRows   int64  `json:"updatedRows"`
	UpdatedCells  int64  `json:"updatedCells"`
}

// GoogleSheet talks to one Google spreadsheet through a service account.
// The account needs edit access to the sheet.
type GoogleSheet struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	valueRange    string
}

func NewGoogleSheet(ctx context.Context, credentialsJSON []byte, spreadsheetID, valueRange string) (*GoogleSheet, error) {
	return NewGoogleSheetWithOptions(ctx, spreadsheetID, valueRange,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func NewGoogleSheetWithOptions(ctx context.Context, spreadsheetID, valueRange string, opts ...option.ClientOption) (*GoogleSheet, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &GoogleSheet{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		valueRange:    valueRange,
	}, nil
}

// Append writes cells RAW: user-entered parsing would turn a number like
// 08123456789 into 8123456789 and break matching on the next read.
func (g *GoogleSheet) Append(ctx context.Context, rows [][]interface{}) (*SheetWriteResult, error) {
	resp, err := g.values.Append(g.spreadsheetID, g.valueRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	result := &SheetWriteResult{
		SpreadsheetID: resp.SpreadsheetId,
		TableRange:    resp.TableRange,
	}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}

func (g *GoogleSheet) Read(ctx context.Context) ([][]string, error) {
	resp, err := g.values.Get(g.spreadsheetID, g.valueRange).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return [][]string{}, nil
		}
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *GoogleSheet) Clear(ctx context.Context) error {
	_, err := g.values.Clear(g.spreadsheetID, g.valueRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// isMissingSheet reports the errors Sheets returns for an absent spreadsheet
// (404) or an absent tab named in the range (400 "Unable to parse range").
func isMissingSheet(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusNotFound || gerr.Code == http.StatusBadRequest
}
