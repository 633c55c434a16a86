package model

import (
	"testing"
	"time"
)

func TestTotalPagesAndFlags(t *testing.T) {
	cases := []struct {
		page, size, total int
		pages             int
		prev, next        bool
	}{
		{1, 10, 0, 0, false, false},
		{1, 10, 25, 3, false, true},
		{3, 10, 25, 3, true, false},
		{4, 10, 25, 3, true, false},
		{2, 5, 10, 2, true, false},
		{1, 1, 1, 1, false, false},
	}
	for _, tc := range cases {
		r := NewPagedResult[int](nil, tc.page, tc.size, tc.total)
		if r.TotalPages != tc.pages || r.HasPreviousPage != tc.prev || r.HasNextPage != tc.next {
			t.Fatalf("page=%d size=%d total=%d: got %+v", tc.page, tc.size, tc.total, r)
		}
		if r.Data == nil {
			t.Fatalf("data must be an empty slice, not nil")
		}
	}
}

func TestParseStatusFilter(t *testing.T) {
	cases := map[string]StatusFilter{
		"":          StatusAll,
		"all":       StatusAll,
		"true":      StatusCompleted,
		"Completed": StatusCompleted,
		"false":     StatusPending,
		"PENDING":   StatusPending,
	}
	for in, want := range cases {
		got, err := ParseStatusFilter(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v err %v", in, got, err)
		}
		if again, _ := ParseStatusFilter(got.QueryValue()); again != got {
			t.Fatalf("%v does not round-trip through its query value", got)
		}
	}
	if _, err := ParseStatusFilter("maybe"); err == nil {
		t.Fatalf("expected error")
	}
	if !StatusAll.Matches(true) || !StatusAll.Matches(false) || StatusPending.Matches(true) || !StatusCompleted.Matches(true) {
		t.Fatalf("Matches broken")
	}
}

func TestDueDateKeepsCalendarDay(t *testing.T) {
	want := time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2024-12-18",
		"2024-12-18T00:00:00Z",
		"2024-12-18T23:30:00-05:00",
		"2024-12-18T00:15:00+14:00",
		"2024-12-18T12:00:00.123456789+02:00",
	}
	for _, in := range inputs {
		got, err := ParseDueDate(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if !got.Equal(want) || got.Location() != time.UTC {
			t.Fatalf("%s: got %s", in, got)
		}
	}
	if d, err := ParseDueDate("  "); d != nil || err != nil {
		t.Fatalf("blank should be nil, got %v %v", d, err)
	}
	if _, err := ParseDueDate("18/12/2024"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestToggledDoesNotAlias(t *testing.T) {
	desc := "d"
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := &Task{ID: "1", Title: "t", Description: &desc, DueDate: &due}
	tog := orig.Toggled()
	if !tog.IsDone || orig.IsDone {
		t.Fatalf("toggle should only flip the copy")
	}
	*tog.Description = "changed"
	if *orig.Description != "d" {
		t.Fatalf("description aliased")
	}
}
