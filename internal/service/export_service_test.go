package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/empsync/empsync-service/internal/codec"
	"github.com/empsync/empsync-service/internal/domain"
	"github.com/empsync/empsync-service/internal/events"
)

func fixedExport(creator EmployeeCreator) *ExportService {
	svc := NewExportService(creator, events.NewInMemoryDispatcher(), "Staff", nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	require.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("pdf")
	require.Error(t, err)
}

func TestExport_CSVAndJSON(t *testing.T) {
	svc := fixedExport(nil)
	employees := DemoEmployees()[:2]

	file, err := svc.Export(FormatCSV, employees)
	require.NoError(t, err)
	require.Equal(t, "employees-20240506.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, exportHeader, records[0])
	require.Equal(t, "Aarav Sharma", records[1][1])
	require.Equal(t, "95000", records[1][6])
	require.Equal(t, "84190", records[1][10])

	file, err = svc.Export(FormatJSON, employees)
	require.NoError(t, err)
	decoded, err := codec.DecodeEmployees(file.Body)
	require.NoError(t, err)
	require.Equal(t, employees[1].Email, decoded[1].Email)
}

func TestExport_XLSXRoundTripsThroughImport(t *testing.T) {
	file, err := fixedExport(nil).Export(FormatXLSX, DemoEmployees()[:3])
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	require.Equal(t, "Staff", book.GetSheetName(0))
	require.NoError(t, book.Close())

	repo := newFakeEmployeeRepo()
	employees := NewEmployeeService(repo, nil, nil)
	report, err := fixedExport(employees).ImportXLSX(context.Background(), bytes.NewReader(file.Body))
	require.NoError(t, err)
	require.Equal(t, 3, report.Created)
	require.Empty(t, report.Failures)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestImportXLSX_ReportsBadRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "Email", "Salary", "Join Date"},
		{"Asha Rao", "asha@example.com", "52,000", "2024-02-01"},
		{"", "missing-name@example.com", "1000", ""},
		{},
		{"Dup", "asha@example.com", "1", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	repo := newFakeEmployeeRepo()
	report, err := fixedExport(NewEmployeeService(repo, nil, nil)).ImportXLSX(context.Background(), buf)
	require.NoError(t, err)
	require.Equal(t, 1, report.Created)
	require.Len(t, report.Failures, 2)
	require.Equal(t, 3, report.Failures[0].Row)
	require.Contains(t, report.Failures[0].Reason, "name")
	require.Equal(t, 5, report.Failures[1].Row)
	require.Contains(t, report.Failures[1].Reason, "already exists")

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.EmployeeStatusActive, all[0].Status)
	require.Equal(t, 52000.0, all[0].Salary)
}

func TestImportXLSX_RejectsGarbage(t *testing.T) {
	_, err := fixedExport(nil).ImportXLSX(context.Background(), bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}
