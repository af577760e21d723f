package excel

// ImportConfig controls how project spreadsheets are read
type ImportConfig struct {
	// Sheet to read from xlsx files; empty means the first sheet
	Sheet string `json:"sheet"`
	// DateLayouts are tried in order for start and end dates
	DateLayouts []string `json:"date_layouts"`
	// MaxRows caps the number of data rows accepted from one file
	MaxRows int `json:"max_rows"`
}

// DefaultImportConfig returns sensible defaults for project imports
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DateLayouts: []string{
			"2006-01-02",
			"2006-01-02T15:04:05Z07:00",
			"1/2/2006",
			"01-02-06",
			"1-2-06",
		},
		MaxRows: 10000,
	}
}

// AnalysisSheet is the sheet name used for analysis exports
const AnalysisSheet = "Analysis"

// ProjectsSheet is the sheet name used for project exports
const ProjectsSheet = "Projects"
