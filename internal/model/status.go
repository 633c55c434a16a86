package model

import (
	"fmt"
	"strings"
)

// StatusFilter replaces the nullable-boolean status of the HTTP contract.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusCompleted
)

// ParseStatusFilter accepts the wire forms ("", "true", "false") and the
// names ("all", "pending", "completed"), case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "null":
		return StatusAll, nil
	case "false", "pending":
		return StatusPending, nil
	case "true", "completed":
		return StatusCompleted, nil
	}
	return StatusAll, fmt.Errorf("unknown status %q", s)
}

// Matches reports whether a task with the given completion flag passes the filter.
func (s StatusFilter) Matches(isDone bool) bool {
	switch s {
	case StatusPending:
		return !isDone
	case StatusCompleted:
		return isDone
	}
	return true
}

// IsDone returns the isDone value the filter selects; ok is false for StatusAll.
func (s StatusFilter) IsDone() (value bool, ok bool) {
	switch s {
	case StatusPending:
		return false, true
	case StatusCompleted:
		return true, true
	}
	return false, false
}

// QueryValue is the wire form used in the status query parameter.
func (s StatusFilter) QueryValue() string {
	switch s {
	case StatusPending:
		return "false"
	case StatusCompleted:
		return "true"
	}
	return ""
}

func (s StatusFilter) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	}
	return "all"
}
