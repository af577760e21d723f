package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"methodcost/domain/analysis"
	"methodcost/domain/project"
	"methodcost/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout       = "2006-01-02"
	exportDateLayout = "1/2/2006"
	notAvailable     = "N/A"
	significanceCut  = 0.05
)

// AnalysisFileName builds the download name: whitespace runs in the
// analysis name become single dashes
func AnalysisFileName(name string, date time.Time, ext string) string {
	return fmt.Sprintf("analysis-%s-%s.%s", strings.Join(strings.Fields(name), "-"), date.Format(dateLayout), ext)
}

// ProjectsFileName builds the download name for a project export
func ProjectsFileName(date time.Time, ext string) string {
	return fmt.Sprintf("projects-export-%s.%s", date.Format(dateLayout), ext)
}

// fixed formats v with the given decimals, spelling infinities out
func fixed(v float64, decimals int) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// AnalysisRows lays an analysis out as the export table: header block,
// summary counts, one row per metric and numbered recommendations
func AnalysisRows(a analysis.SavedAnalysis) [][]string {
	s := a.Results.Summary
	rows := [][]string{
		{"Analysis Name", a.Name},
		{"Date", a.CreatedAt.Format(exportDateLayout)},
		{""},
		{"Summary"},
		{"Total Projects", strconv.Itoa(s.TotalProjects)},
		{"Agile Projects", strconv.Itoa(s.AgileProjects)},
		{"Waterfall Projects", strconv.Itoa(s.WaterfallProjects)},
		{"Hybrid Projects", strconv.Itoa(s.HybridProjects)},
		{""},
		{"Methodology Comparison"},
		{"Metric", "Agile Mean", "Agile Std Dev", "Waterfall Mean", "Waterfall Std Dev", "P-Value", "Significant"},
	}

	for _, key := range a.Results.MetricKeys(a.Configuration.Metrics) {
		m := a.Results.Metrics[key]
		row := []string{key.Label(), notAvailable, notAvailable, notAvailable, notAvailable, notAvailable, notAvailable}
		if m.Agile != nil {
			row[1] = fixed(m.Agile.Mean, 2)
			row[2] = fixed(m.Agile.StandardDeviation, 2)
		}
		if m.Waterfall != nil {
			row[3] = fixed(m.Waterfall.Mean, 2)
			row[4] = fixed(m.Waterfall.StandardDeviation, 2)
		}
		if m.Comparison != nil {
			row[5] = fixed(m.Comparison.PValue, 4)
			row[6] = "No"
			if m.Comparison.PValue < significanceCut {
				row[6] = "Yes"
			}
		}
		rows = append(rows, row)
	}

	rows = append(rows, []string{""}, []string{"Recommendations"})
	for i, rec := range a.Results.Recommendations {
		rows = append(rows, []string{strconv.Itoa(i + 1), rec})
	}
	return rows
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

func writeQuotedRows(w io.Writer, header []string, rows [][]string) error {
	lines := make([]string, 0, len(rows)+1)
	if header != nil {
		lines = append(lines, strings.Join(header, ","))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = quote(c)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// WriteAnalysisCSV writes the export table with every cell quoted
func WriteAnalysisCSV(w io.Writer, a analysis.SavedAnalysis) error {
	if err := writeQuotedRows(w, nil, AnalysisRows(a)); err != nil {
		return errors.ExportFailed("csv", err)
	}
	return nil
}

// WriteAnalysisXLSX writes the export table to the Analysis sheet.
// Finite numeric cells are stored as numbers.
func WriteAnalysisXLSX(w io.Writer, a analysis.SavedAnalysis) error {
	f, sheet, err := newWorkbook(AnalysisSheet)
	if err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	defer f.Close()

	for r, row := range AnalysisRows(a) {
		for c, v := range row {
			var value interface{} = v
			if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				value = n
			}
			if err := setCell(f, sheet, c+1, r+1, value); err != nil {
				return errors.ExportFailed("xlsx", err)
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	if err := f.SetColWidth(sheet, "B", "G", 18); err != nil {
		return errors.ExportFailed("xlsx", err)
	}

	if err := f.Write(w); err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	return nil
}

// ProjectRow renders a project as export cells
func ProjectRow(p project.Project) []string {
	end := OngoingEndDate
	if p.EndDate != nil {
		end = p.EndDate.Format(dateLayout)
	}
	return []string{
		p.Name,
		string(p.Methodology),
		p.Industry,
		string(p.Size),
		strconv.Itoa(p.TeamSize),
		p.StartDate.Format(dateLayout),
		end,
		string(p.Status),
		strconv.FormatFloat(p.PlannedCost, 'f', -1, 64),
		strconv.FormatFloat(p.ActualCost, 'f', -1, 64),
	}
}

// WriteProjectsCSV writes a plain header line followed by quoted project rows
func WriteProjectsCSV(w io.Writer, projects []project.Project) error {
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = ProjectRow(p)
	}
	if err := writeQuotedRows(w, ProjectHeaders, rows); err != nil {
		return errors.ExportFailed("csv", err)
	}
	return nil
}

// WriteProjectsXLSX writes projects to the Projects sheet in a layout
// DataReader reads back
func WriteProjectsXLSX(w io.Writer, projects []project.Project) error {
	f, sheet, err := newWorkbook(ProjectsSheet)
	if err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	defer f.Close()

	for c, h := range ProjectHeaders {
		if err := setCell(f, sheet, c+1, 1, h); err != nil {
			return errors.ExportFailed("xlsx", err)
		}
	}

	for r, p := range projects {
		rowIdx := r + 2
		for c, v := range ProjectRow(p) {
			var value interface{} = v
			switch c {
			case 4:
				value = p.TeamSize
			case 8:
				value = p.PlannedCost
			case 9:
				value = p.ActualCost
			}
			if err := setCell(f, sheet, c+1, rowIdx, value); err != nil {
				return errors.ExportFailed("xlsx", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ExportFailed("xlsx", err)
	}
	return nil
}

// newWorkbook creates a file whose only sheet is named sheet
func newWorkbook(sheet string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, "", err
	}
	return f, sheet, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
