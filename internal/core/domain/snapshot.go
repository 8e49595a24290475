package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Snapshot is an immutable capture of the ticket fields relevant to change detection.
type Snapshot struct {
	Key         string    `json:"key" yaml:"key"`
	Summary     string    `json:"summary" yaml:"summary"`
	Description string    `json:"description" yaml:"description"`
	Priority    string    `json:"priority" yaml:"priority"`
	Status      string    `json:"status" yaml:"status"`
	Assignee    string    `json:"assignee,omitzero" yaml:"assignee"`
	Reporter    string    `json:"reporter" yaml:"reporter"`
	Created     time.Time `json:"created,omitzero" yaml:"created"`
}

// Value returns the current value of the given field.
// Unknown fields yield the empty string.
func (s Snapshot) Value(f Field) string {
	switch f {
	case FieldSummary:
		return s.Summary
	case FieldDescription:
		return s.Description
	case FieldPriority:
		return s.Priority
	case FieldStatus:
		return s.Status
	case FieldAssignee:
		return s.Assignee
	case FieldReporter:
		return s.Reporter
	default:
		return ""
	}
}

// Validate rejects snapshots that cannot be keyed in the history store.
func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return zerr.With(ErrInvalidTicketKey, "key", s.Key)
	}
	return nil
}

// Fingerprint returns a hash over every compared field.
// Two snapshots with equal fingerprints are, for all practical purposes, unchanged.
func (s Snapshot) Fingerprint() string {
	hasher := xxhash.New()
	for _, f := range fieldOrder {
		_, _ = hasher.WriteString(string(f))
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(s.Value(f))
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// ChangedFields compares every tracked field of current against previous and returns
// the fields whose values differ, in canonical order. Key and Created are never compared.
func ChangedFields(current, previous Snapshot) []Field {
	var changed []Field
	for _, f := range fieldOrder {
		if current.Value(f) != previous.Value(f) {
			changed = append(changed, f)
		}
	}
	return changed
}
