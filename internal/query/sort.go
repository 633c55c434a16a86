package query

import (
	"strings"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

// SortField enumerates the sortable task columns.
type SortField string

const (
	SortTitle        SortField = "title"
	SortDueDate      SortField = "dueDate"
	SortIsDone       SortField = "isDone"
	SortCreationDate SortField = "creationDate"
)

var sortFields = map[string]SortField{
	"title":        SortTitle,
	"duedate":      SortDueDate,
	"isdone":       SortIsDone,
	"creationdate": SortCreationDate,
}

// SortSpec is a resolved single-column ordering.
type SortSpec struct {
	Field SortField
	Desc  bool
}

// FallbackSort applies when sortBy is absent or unknown.
var FallbackSort = SortSpec{Field: SortCreationDate, Desc: true}

// ResolveSort maps the raw request pair onto a SortSpec.
func ResolveSort(sortBy, sortDirection string) SortSpec {
	f, ok := sortFields[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return FallbackSort
	}
	return SortSpec{Field: f, Desc: strings.ToLower(strings.TrimSpace(sortDirection)) == "desc"}
}

// IsSortField reports whether name resolves to a sortable column.
func IsSortField(name string) bool {
	_, ok := sortFields[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Compare orders a before b (negative), after (positive) or equal (0) under spec.
// Equal keys fall through to id ascending regardless of direction.
func Compare(a, b *model.Task, spec SortSpec) int {
	c := compareField(a, b, spec.Field)
	if spec.Desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareField(a, b *model.Task, f SortField) int {
	switch f {
	case SortTitle:
		return strings.Compare(a.Title, b.Title)
	case SortDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return -1
		case b.DueDate == nil:
			return 1
		}
		return a.DueDate.Compare(*b.DueDate)
	case SortIsDone:
		switch {
		case a.IsDone == b.IsDone:
			return 0
		case !a.IsDone:
			return -1
		}
		return 1
	default:
		return a.CreationDate.Compare(b.CreationDate)
	}
}
