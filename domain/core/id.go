package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ProjectID  ID
	AnalysisID ID
)

func (id ProjectID) String() string  { return ID(id).String() }
func (id AnalysisID) String() string { return ID(id).String() }

// NewProjectID returns a fresh time-ordered project identifier
func NewProjectID() ProjectID { return ProjectID(NewID()) }

// NewAnalysisID returns a fresh time-ordered analysis identifier
func NewAnalysisID() AnalysisID { return AnalysisID(NewID()) }

// ParseProjectID parses a string into ProjectID
func ParseProjectID(s string) (ProjectID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("project ID cannot be empty")
	}
	return ProjectID(s), nil
}

// ParseAnalysisID parses a string into AnalysisID
func ParseAnalysisID(s string) (AnalysisID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("analysis ID cannot be empty")
	}
	return AnalysisID(s), nil
}

// DefaultUserID is the tenant used when a request carries no user identity.
var DefaultUserID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

// ParseUserID parses a user identifier, falling back to DefaultUserID for blank input
func ParseUserID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultUserID, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID %q: %w", s, err)
	}
	return id, nil
}
