package project

import (
	"time"

	"methodcost/domain/core"

	"github.com/google/uuid"
)

// Methodology is the delivery methodology a project followed.
// Values outside the known set are preserved as-is.
type Methodology string

const (
	MethodologyAgile     Methodology = "Agile"
	MethodologyWaterfall Methodology = "Waterfall"
	MethodologyHybrid    Methodology = "Hybrid"
)

// Methodologies lists the recognised methodologies in display order
var Methodologies = []Methodology{MethodologyAgile, MethodologyWaterfall, MethodologyHybrid}

// IsKnown reports whether m is one of the recognised methodologies
func (m Methodology) IsKnown() bool {
	switch m {
	case MethodologyAgile, MethodologyWaterfall, MethodologyHybrid:
		return true
	}
	return false
}

// Size is the coarse project size class
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// IsKnown reports whether s is one of the recognised sizes
func (s Size) IsKnown() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Status is the delivery status of a project
type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
)

// Project is a single cost record. The analysis core only reads
// Methodology, PlannedCost and ActualCost.
type Project struct {
	ID          core.ProjectID `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"userId" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	Methodology Methodology    `json:"methodology" db:"methodology"`
	Industry    string         `json:"industry" db:"industry"`
	Size        Size           `json:"size" db:"size"`
	TeamSize    int            `json:"teamSize" db:"team_size"`
	StartDate   time.Time      `json:"startDate" db:"start_date"`
	EndDate     *time.Time     `json:"endDate,omitempty" db:"end_date"`
	Status      Status         `json:"status" db:"status"`
	PlannedCost float64        `json:"plannedCost" db:"planned_cost"`
	ActualCost  float64        `json:"actualCost" db:"actual_cost"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// CostVariance returns actual minus planned cost (positive means over budget)
func (p Project) CostVariance() float64 {
	return p.ActualCost - p.PlannedCost
}

// IDs returns the identifiers of the given projects in order
func IDs(projects []Project) []core.ProjectID {
	ids := make([]core.ProjectID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}
