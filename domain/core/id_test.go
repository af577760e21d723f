package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestParseProjectID(t *testing.T) {
	if _, err := ParseProjectID("   "); err == nil {
		t.Error("Expected error for blank project ID")
	}
	id, err := ParseProjectID("p-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "p-1" {
		t.Errorf("Expected 'p-1', got '%s'", id)
	}
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != DefaultUserID {
		t.Errorf("Expected default user for blank input, got %s", id)
	}

	if _, err := ParseUserID("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed user ID")
	}
}
