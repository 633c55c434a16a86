// Package query holds the paged task query pipeline shared by the in-memory
// store and the tests of the SQL store: filter, count, sort, slice.
package query

import (
	"slices"
	"strings"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

// Criteria is the filter half of a page request.
type Criteria struct {
	Status model.StatusFilter
	Search string
}

// CriteriaOf keeps the search text as typed; blank text disables the search
// but surrounding spaces of a real term are part of the match.
func CriteriaOf(req model.PageRequest) Criteria {
	c := Criteria{Status: req.Status}
	if strings.TrimSpace(req.SearchText) != "" {
		c.Search = req.SearchText
	}
	return c
}

// Match applies status first, then case-sensitive substring search on
// title or a present description.
func (c Criteria) Match(t *model.Task) bool {
	if !c.Status.Matches(t.IsDone) {
		return false
	}
	if c.Search == "" {
		return true
	}
	if strings.Contains(t.Title, c.Search) {
		return true
	}
	return t.Description != nil && strings.Contains(*t.Description, c.Search)
}

// Offset is the number of matching rows skipped before the page starts.
func Offset(req model.PageRequest) int {
	if req.PageNumber < 1 || req.PageSize < 1 {
		return 0
	}
	return (req.PageNumber - 1) * req.PageSize
}

// Filter returns the matching tasks in input order.
func Filter(tasks []*model.Task, c Criteria) []*model.Task {
	out := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Execute runs the full pipeline over an in-memory set. The input slice is not modified.
func Execute(tasks []*model.Task, req model.PageRequest) *model.PagedResult[*model.Task] {
	matched := Filter(tasks, CriteriaOf(req))
	total := len(matched)

	spec := ResolveSort(req.SortBy, req.SortDirection)
	slices.SortStableFunc(matched, func(a, b *model.Task) int { return Compare(a, b, spec) })

	return model.NewPagedResult(Window(matched, req), req.PageNumber, req.PageSize, total)
}

// Window slices one page out of an already sorted set.
func Window[T any](sorted []T, req model.PageRequest) []T {
	if req.PageSize < 1 {
		return []T{}
	}
	start := Offset(req)
	if start >= len(sorted) {
		return []T{}
	}
	end := min(start+req.PageSize, len(sorted))
	return sorted[start:end]
}
