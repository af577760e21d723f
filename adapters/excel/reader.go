package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"methodcost/domain/project"
	"methodcost/internal"
	"methodcost/internal/errors"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// DataReader handles reading project portfolios from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	src      io.Reader
	config   ImportConfig
	logger   *internal.Logger
}

// FileType maps a file name to "csv" or "xlsx", or "" when unsupported
func FileType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	default:
		return ""
	}
}

// NewDataReader creates a reader for a file on disk
func NewDataReader(filePath string) *DataReader {
	fileType := FileType(filePath)
	if fileType == "" {
		fileType = "xlsx"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   DefaultImportConfig(),
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// NewStreamReader creates a reader over an uploaded file. name is only used
// to pick the format.
func NewStreamReader(name string, src io.Reader) *DataReader {
	r := NewDataReader(name)
	r.src = src
	return r
}

// WithConfig replaces the import configuration
func (r *DataReader) WithConfig(config ImportConfig) *DataReader {
	r.config = config
	return r
}

// ReadData reads the first header row and all data rows
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	src := r.src
	if src == nil {
		file, err := os.Open(r.filePath)
		if os.IsNotExist(err) {
			return nil, errors.InvalidInputf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", r.filePath)
		}
		defer file.Close()
		src = file
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows(src)
	case "xlsx":
		rows, err = r.readExcelRows(src)
	default:
		return nil, errors.InvalidInputf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInputf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}
	if r.config.MaxRows > 0 && len(rows)-1 > r.config.MaxRows {
		return nil, errors.InvalidInputf("file has %d data rows, limit is %d", len(rows)-1, r.config.MaxRows)
	}

	return r.processRows(rows), nil
}

func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.InvalidInputf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.InvalidInputf("failed to read sheet %q: %v", sheet, err)
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InvalidInputf("failed to read CSV file: %v", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// normalizeHeader lowercases and drops spaces, underscores and dashes so
// "Team Size", "team_size" and "teamSize" agree
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h))
}

// processRows converts raw string rows into ExcelData, skipping blank rows
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	keys := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		keys[i] = normalizeHeader(header)
	}

	var dataRows []RawRowData
	for _, row := range rows[1:] {
		rowData := make(RawRowData)
		blank := true
		for j, cell := range row {
			if j < len(keys) {
				v := strings.TrimSpace(cell)
				rowData[keys[j]] = v
				if v != "" {
					blank = false
				}
			}
		}
		if !blank {
			dataRows = append(dataRows, rowData)
		}
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))
	return &ExcelData{Headers: headers, Rows: dataRows}
}

// ReadProjects reads the file and converts every row into a project owned
// by userID. The first invalid row aborts the import with its row number.
func (r *DataReader) ReadProjects(userID uuid.UUID) ([]project.Project, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return r.ToProjects(data, userID)
}

// ToProjects converts parsed rows into projects
func (r *DataReader) ToProjects(data *ExcelData, userID uuid.UUID) ([]project.Project, error) {
	present := make(map[string]bool, len(data.Headers))
	for _, h := range data.Headers {
		present[normalizeHeader(h)] = true
	}
	for _, required := range []string{"name", "methodology", "plannedcost", "actualcost"} {
		if !present[required] {
			return nil, errors.InvalidInputf("missing required column %q", required)
		}
	}

	projects := make([]project.Project, 0, len(data.Rows))
	for i, row := range data.Rows {
		p, err := r.rowToProject(row)
		if err != nil {
			// +2: one for the header, one for 1-based numbering
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		p.UserID = userID
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *DataReader) rowToProject(row RawRowData) (project.Project, error) {
	p := project.Project{
		Name:        row["name"],
		Methodology: normalizeMethodology(row["methodology"]),
		Industry:    row["industry"],
		Size:        normalizeSize(row["size"]),
		Status:      normalizeStatus(row["status"]),
	}
	if p.Name == "" {
		return p, errors.InvalidInput("name is required")
	}
	if p.Methodology == "" {
		return p, errors.InvalidInput("methodology is required")
	}

	var err error
	if p.PlannedCost, err = parseCost(row["plannedcost"]); err != nil {
		return p, errors.InvalidInputf("invalid planned cost %q", row["plannedcost"])
	}
	if p.ActualCost, err = parseCost(row["actualcost"]); err != nil {
		return p, errors.InvalidInputf("invalid actual cost %q", row["actualcost"])
	}

	if v := row["teamsize"]; v != "" {
		if p.TeamSize, err = strconv.Atoi(v); err != nil || p.TeamSize < 0 {
			return p, errors.InvalidInputf("invalid team size %q", v)
		}
	}

	if v := row["startdate"]; v != "" {
		if p.StartDate, err = r.parseDate(v); err != nil {
			return p, err
		}
	}
	if v := row["enddate"]; v != "" && !strings.EqualFold(v, OngoingEndDate) {
		end, err := r.parseDate(v)
		if err != nil {
			return p, err
		}
		p.EndDate = &end
	}
	return p, nil
}

func (r *DataReader) parseDate(v string) (time.Time, error) {
	for _, layout := range r.config.DateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.InvalidInputf("invalid date %q", v)
}

// parseCost accepts plain numbers and currency-formatted values like "$1,234.50"
func parseCost(v string) (float64, error) {
	v = strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	if v == "" {
		return 0, fmt.Errorf("empty cost")
	}
	return strconv.ParseFloat(v, 64)
}

// normalizeMethodology maps case variants of known methodologies onto their
// canonical spelling and keeps anything else verbatim
func normalizeMethodology(v string) project.Methodology {
	for _, m := range project.Methodologies {
		if strings.EqualFold(v, string(m)) {
			return m
		}
	}
	return project.Methodology(v)
}

func normalizeSize(v string) project.Size {
	for _, s := range []project.Size{project.SizeSmall, project.SizeMedium, project.SizeLarge} {
		if strings.EqualFold(v, string(s)) {
			return s
		}
	}
	return project.Size(v)
}

func normalizeStatus(v string) project.Status {
	for _, s := range []project.Status{project.StatusActive, project.StatusCompleted, project.StatusOnHold} {
		if strings.EqualFold(strings.ReplaceAll(v, " ", ""), strings.ReplaceAll(string(s), " ", "")) {
			return s
		}
	}
	if v == "" {
		return project.StatusActive
	}
	return project.Status(v)
}

// ReadProjectsBytes is a convenience for in-memory uploads
func ReadProjectsBytes(name string, content []byte, userID uuid.UUID) ([]project.Project, error) {
	if FileType(name) == "" {
		return nil, errors.InvalidInputf("unsupported file type: %s", filepath.Ext(name))
	}
	return NewStreamReader(name, bytes.NewReader(content)).ReadProjects(userID)
}
