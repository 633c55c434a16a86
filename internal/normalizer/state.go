// Package normalizer folds independent list-view inputs (search box, status
// tabs and dropdown, column sort, pager) into one canonical page request.
//
// State is a plain value and Reduce is pure; Controller adds the debounced
// search, request sequencing and cancellation around it.
package normalizer

import (
	"strings"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

// PageSizeOptions are the page sizes offered to the user.
var PageSizeOptions = []int{5, 10, 25, 50}

type State struct {
	PageNumber    int                `json:"pageNumber"`
	PageSize      int                `json:"pageSize"`
	SortBy        string             `json:"sortBy"`
	SortDirection string             `json:"sortDirection"`
	SearchText    string             `json:"searchText"`
	Status        model.StatusFilter `json:"status"`
}

func Initial(pageSize int) State {
	if pageSize < 1 {
		pageSize = model.DefaultPageSize
	}
	return State{
		PageNumber:    model.DefaultPageNumber,
		PageSize:      pageSize,
		SortDirection: model.DefaultSortDirection,
	}
}

// Request is the canonical request sent to the executor.
func (s State) Request() model.PageRequest {
	return model.PageRequest{
		PageNumber:    s.PageNumber,
		PageSize:      s.PageSize,
		SortBy:        s.SortBy,
		SortDirection: s.SortDirection,
		SearchText:    s.SearchText,
		Status:        s.Status,
	}
}

type Action interface{ isAction() }

// SearchSettled is emitted once the search box has been quiet for the debounce delay.
type SearchSettled struct{ Text string }

type StatusSelected struct{ Status model.StatusFilter }

type TabSelected struct{ Index int }

type DropdownSelected struct{ Value string }

// SortChanged carries the single active sort column; an empty Field means the
// grid cleared its sort model and is ignored.
type SortChanged struct{ Field, Direction string }

type PageChanged struct{ Page int }

type PageSizeChanged struct{ Size int }

func (SearchSettled) isAction()    {}
func (StatusSelected) isAction()   {}
func (TabSelected) isAction()      {}
func (DropdownSelected) isAction() {}
func (SortChanged) isAction()      {}
func (PageChanged) isAction()      {}
func (PageSizeChanged) isAction()  {}

// Reduce merges one action into the state. Search, status and page size
// changes go back to page 1; sort and page changes keep the other fields.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SearchSettled:
		if a.Text == s.SearchText {
			return s
		}
		s.SearchText = a.Text
		s.PageNumber = 1
	case StatusSelected:
		return withStatus(s, a.Status)
	case TabSelected:
		if st, ok := StatusFromTab(a.Index); ok {
			return withStatus(s, st)
		}
	case DropdownSelected:
		if st, ok := StatusFromDropdown(a.Value); ok {
			return withStatus(s, st)
		}
	case SortChanged:
		if strings.TrimSpace(a.Field) == "" {
			return s
		}
		s.SortBy = a.Field
		s.SortDirection = a.Direction
		if s.SortDirection == "" {
			s.SortDirection = model.DefaultSortDirection
		}
	case PageChanged:
		if a.Page >= 1 {
			s.PageNumber = a.Page
		}
	case PageSizeChanged:
		if a.Size >= 1 && a.Size != s.PageSize {
			s.PageSize = a.Size
			s.PageNumber = 1
		}
	}
	return s
}

func withStatus(s State, st model.StatusFilter) State {
	if st == s.Status {
		return s
	}
	s.Status = st
	s.PageNumber = 1
	return s
}

// Tabs and the dropdown are two views of the same StatusFilter.

var tabOrder = []model.StatusFilter{model.StatusAll, model.StatusPending, model.StatusCompleted}

func TabIndex(s model.StatusFilter) int {
	for i, st := range tabOrder {
		if st == s {
			return i
		}
	}
	return 0
}

func StatusFromTab(i int) (model.StatusFilter, bool) {
	if i < 0 || i >= len(tabOrder) {
		return model.StatusAll, false
	}
	return tabOrder[i], true
}

func DropdownValue(s model.StatusFilter) string { return s.String() }

func StatusFromDropdown(v string) (model.StatusFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "all":
		return model.StatusAll, true
	case "pending":
		return model.StatusPending, true
	case "completed":
		return model.StatusCompleted, true
	}
	return model.StatusAll, false
}

// NextPageSize cycles through PageSizeOptions.
func NextPageSize(cur int) int {
	for i, n := range PageSizeOptions {
		if n == cur {
			return PageSizeOptions[(i+1)%len(PageSizeOptions)]
		}
	}
	return PageSizeOptions[0]
}
