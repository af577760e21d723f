package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/internal/errors"
	"methodcost/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProjects_CSV(t *testing.T) {
	input := strings.Join([]string{
		"Name,Methodology,Industry,Size,Team Size,Start Date,End Date,Status,Planned Cost,Actual Cost",
		`"Claims Portal","waterfall","Insurance","medium","9","2024-02-10","Ongoing","on hold","$120,000","131,500.50"`,
		``,
		`"Data Lake","Kanban","Finance","Large","14","3/1/2024","2024-09-30","Completed","400000","380000"`,
	}, "\n")

	projects, err := NewStreamReader("upload.csv", strings.NewReader(input)).ReadProjects(core.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	claims := projects[0]
	assert.Equal(t, "Claims Portal", claims.Name)
	assert.Equal(t, project.MethodologyWaterfall, claims.Methodology)
	assert.Equal(t, project.SizeMedium, claims.Size)
	assert.Equal(t, project.StatusOnHold, claims.Status)
	assert.Equal(t, 9, claims.TeamSize)
	assert.Equal(t, 120000.0, claims.PlannedCost)
	assert.Equal(t, 131500.5, claims.ActualCost)
	assert.Nil(t, claims.EndDate)
	assert.Equal(t, core.DefaultUserID, claims.UserID)

	lake := projects[1]
	assert.Equal(t, project.Methodology("Kanban"), lake.Methodology, "unknown methodologies are kept verbatim")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), lake.StartDate)
	require.NotNil(t, lake.EndDate)
	assert.Equal(t, time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), *lake.EndDate)
}

func TestReadProjects_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"header only", "Name,Methodology,Planned Cost,Actual Cost", "at least a header row"},
		{"missing column", "Name,Methodology,Planned Cost\nA,Agile,1", `missing required column "actualcost"`},
		{"bad cost", "Name,Methodology,Planned Cost,Actual Cost\nA,Agile,1,abc", `row 2: invalid actual cost "abc"`},
		{"bad date", "name,methodology,planned_cost,actual_cost,start_date\nA,Agile,1,2,yesterday", `row 2: invalid date "yesterday"`},
		{"missing name", "Name,Methodology,Planned Cost,Actual Cost\nA,Agile,1,2\n,Agile,1,2", "row 3: name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStreamReader("upload.csv", strings.NewReader(tt.input)).ReadProjects(core.DefaultUserID)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReadProjects_MissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/portfolio.xlsx").ReadProjects(core.DefaultUserID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestReadProjectsBytes_UnsupportedType(t *testing.T) {
	_, err := ReadProjectsBytes("projects.json", []byte("[]"), core.DefaultUserID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestProjects_XLSXRoundTrip(t *testing.T) {
	sample := testkit.SampleProjects(core.DefaultUserID)

	var buf bytes.Buffer
	require.NoError(t, WriteProjectsXLSX(&buf, sample))

	projects, err := ReadProjectsBytes("portfolio.xlsx", buf.Bytes(), core.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, projects, len(sample))

	for i := range sample {
		assert.Equal(t, sample[i].Name, projects[i].Name)
		assert.Equal(t, sample[i].Methodology, projects[i].Methodology)
		assert.Equal(t, sample[i].Size, projects[i].Size)
		assert.Equal(t, sample[i].TeamSize, projects[i].TeamSize)
		assert.Equal(t, sample[i].Status, projects[i].Status)
		assert.Equal(t, sample[i].StartDate, projects[i].StartDate)
		assert.Equal(t, sample[i].EndDate, projects[i].EndDate)
		assert.Equal(t, sample[i].PlannedCost, projects[i].PlannedCost)
		assert.Equal(t, sample[i].ActualCost, projects[i].ActualCost)
	}
}

func TestProjects_CSVRoundTrip(t *testing.T) {
	sample := testkit.SampleProjects(core.DefaultUserID)

	var buf bytes.Buffer
	require.NoError(t, WriteProjectsCSV(&buf, sample))

	projects, err := ReadProjectsBytes("portfolio.csv", buf.Bytes(), core.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, projects, len(sample))
	assert.Equal(t, sample[4].Status, projects[4].Status)
	assert.Nil(t, projects[4].EndDate)
}
