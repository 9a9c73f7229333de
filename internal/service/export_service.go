package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/empsync/empsync-service/internal/api/dto"
	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
	apperrors "github.com/empsync/empsync-service/pkg/util/errorutil"
)

// ExportFormat names a download format.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat accepts json, csv or xlsx (case-insensitive). Empty means json.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", apperrors.NewFieldErrors(map[string]string{"format": "must be one of: json csv xlsx"})
	}
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ImportFailure describes one spreadsheet row that could not be imported.
type ImportFailure struct {
	Row    int    `json:"row"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport summarises a spreadsheet import.
type ImportReport struct {
	Created  int             `json:"created"`
	Failures []ImportFailure `json:"failures"`
}

// EmployeeCreator creates one employee from a request.
type EmployeeCreator interface {
	Create(ctx context.Context, req dto.EmployeeRequest) (*domain.Employee, error)
}

var exportHeader = []string{
	"ID", "Name", "Email", "Department", "Position", "Gender",
	"Salary", "Bonus", "PF", "Tax", "Net Salary", "Status", "Join Date", "Phone", "Address",
}

// ExportService renders employee downloads and imports spreadsheets.
type ExportService struct {
	creator    EmployeeCreator
	dispatcher events.Dispatcher
	sheetName  string
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService constructs the service.
func NewExportService(creator EmployeeCreator, dispatcher events.Dispatcher, sheetName string, logger *zap.Logger) *ExportService {
	if sheetName == "" {
		sheetName = "Employees"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{creator: creator, dispatcher: dispatcher, sheetName: sheetName, logger: logger, now: time.Now}
}

// Export renders employees in the requested format.
func (s *ExportService) Export(format ExportFormat, employees []domain.Employee) (ExportFile, error) {
	base := "employees-" + s.now().UTC().Format("20060102")
	switch format {
	case FormatJSON:
		body, err := codec.EncodeEmployees(employees)
		if err != nil {
			return ExportFile{}, apperrors.NewInternalError(err)
		}
		return ExportFile{Filename: base + ".json", ContentType: "application/json", Body: body}, nil
	case FormatCSV:
		body, err := encodeCSV(employees)
		if err != nil {
			return ExportFile{}, apperrors.NewInternalError(err)
		}
		return ExportFile{Filename: base + ".csv", ContentType: "text/csv", Body: body}, nil
	case FormatXLSX:
		body, err := s.encodeXLSX(employees)
		if err != nil {
			return ExportFile{}, apperrors.NewInternalError(err)
		}
		return ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	default:
		return ExportFile{}, apperrors.NewFieldErrors(map[string]string{"format": "must be one of: json csv xlsx"})
	}
}

func exportRow(e domain.Employee) []string {
	joinDate := ""
	if !e.JoinDate.IsZero() {
		joinDate = e.JoinDate.Format("2006-01-02")
	}
	return []string{
		e.ID,
		e.Name,
		e.Email,
		e.Department,
		e.Position,
		e.Gender,
		formatAmount(e.Salary),
		formatAmount(e.Bonus),
		formatAmount(e.PF),
		formatAmount(e.Tax),
		formatAmount(e.NetSalary()),
		string(e.Status),
		joinDate,
		deref(e.Phone),
		deref(e.Address),
	}
}

func encodeCSV(employees []domain.Employee) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, e := range employees {
		if err := w.Write(exportRow(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s *ExportService) encodeXLSX(employees []domain.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(s.sheetName, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(e)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		// numeric columns stay numeric so spreadsheet formulas work
		values[6], values[7], values[8], values[9], values[10] = e.Salary, e.Bonus, e.PF, e.Tax, e.NetSalary()
		if err := f.SetSheetRow(s.sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX reads the first worksheet, whose first row is a header, and
// creates one employee per following row. Rows that fail are reported, not fatal.
func (s *ExportService) ImportXLSX(ctx context.Context, r io.Reader) (ImportReport, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return ImportReport{}, apperrors.NewValidationError("file is not a readable xlsx workbook", map[string]any{"reason": err.Error()})
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return ImportReport{}, apperrors.NewValidationError("no worksheet found", nil)
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return ImportReport{}, apperrors.NewInternalError(err)
	}
	if len(rows) == 0 {
		return ImportReport{}, apperrors.NewValidationError("worksheet is empty", nil)
	}

	columns := headerIndex(rows[0])
	if _, ok := columns["name"]; !ok {
		return ImportReport{}, apperrors.NewValidationError("header row must include a Name column", nil)
	}
	if _, ok := columns["email"]; !ok {
		return ImportReport{}, apperrors.NewValidationError("header row must include an Email column", nil)
	}

	// Per-row events are marked as batch; subscribers refresh once on the
	// closing employees_imported event.
	rowCtx := events.WithBatch(ctx)
	report := ImportReport{Failures: []ImportFailure{}}
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if blankRow(row) {
			continue
		}
		rowNumber := i + 2
		req := requestFromRow(row, columns)
		if _, err := s.creator.Create(rowCtx, req); err != nil {
			report.Failures = append(report.Failures, ImportFailure{
				Row:    rowNumber,
				Email:  req.Email,
				Reason: importReason(err),
			})
			continue
		}
		report.Created++
	}

	s.logger.Info("employee import finished", zap.Int("created", report.Created), zap.Int("failed", len(report.Failures)))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventEmployeesImported,
		Payload: events.EmployeesImportedPayload{Created: report.Created, Failed: len(report.Failures)},
	})
	return report, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.NewReplacer(" ", "", "_", "").Replace(key)
		if key != "" {
			columns[key] = i
		}
	}
	return columns
}

func cellValue(row []string, columns map[string]int, key string) string {
	idx, ok := columns[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func requestFromRow(row []string, columns map[string]int) dto.EmployeeRequest {
	req := dto.EmployeeRequest{
		Name:       cellValue(row, columns, "name"),
		Email:      cellValue(row, columns, "email"),
		Department: cellValue(row, columns, "department"),
		Position:   cellValue(row, columns, "position"),
		Gender:     cellValue(row, columns, "gender"),
		Salary:     parseAmount(cellValue(row, columns, "salary")),
		Bonus:      parseAmount(cellValue(row, columns, "bonus")),
		PF:         parseAmount(cellValue(row, columns, "pf")),
		Tax:        parseAmount(cellValue(row, columns, "tax")),
		Status:     cellValue(row, columns, "status"),
		JoinDate:   normalizeDate(cellValue(row, columns, "joindate")),
	}
	if phone := cellValue(row, columns, "phone"); phone != "" {
		req.Phone = &phone
	}
	if address := cellValue(row, columns, "address"); address != "" {
		req.Address = &address
	}
	return req
}

func parseAmount(raw string) codec.Number {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return codec.Number(v)
}

// normalizeDate accepts ISO dates, US-style dates and Excel serials.
func normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02")
		}
	}
	for _, layout := range []string{"2006-01-02", "1/2/2006", "01/02/2006", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func importReason(err error) string {
	de := apperrors.ToDomainError(err)
	if len(de.Details) == 0 {
		return de.Message
	}
	parts := make([]string, 0, len(de.Details))
	for field, msg := range de.Details {
		parts = append(parts, fmt.Sprintf("%s %v", field, msg))
	}
	sort.Strings(parts)
	return de.Message + ": " + strings.Join(parts, "; ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
