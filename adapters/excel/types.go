package excel

// RawRowData represents a row of raw spreadsheet data keyed by normalised header
type RawRowData map[string]string

// ExcelData represents the complete spreadsheet dataset
type ExcelData struct {
	Headers []string     // Column headers as written in the file
	Rows    []RawRowData // Data rows
}

// Project columns, in export order
var ProjectHeaders = []string{
	"Name", "Methodology", "Industry", "Size", "Team Size",
	"Start Date", "End Date", "Status", "Planned Cost", "Actual Cost",
}

// OngoingEndDate is written in place of a missing end date
const OngoingEndDate = "Ongoing"
