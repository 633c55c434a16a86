package tui

import (
	"fmt"
	"strings"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/normalizer"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

var tabLabels = []string{"All", "Pending", "Completed"}

func (m *Model) View() string {
	snap := m.ctrl.Snapshot()
	st := snap.State
	var b strings.Builder

	active := normalizer.TabIndex(st.Status)
	for i, label := range tabLabels {
		if i == active {
			fmt.Fprintf(&b, "[%d %s] ", i+1, label)
		} else {
			fmt.Fprintf(&b, " %d %s  ", i+1, label)
		}
	}
	fmt.Fprintf(&b, "  status: %s\n", normalizer.DropdownValue(st.Status))

	cursor := ""
	if m.mode == modeSearch {
		cursor = "_"
	}
	fmt.Fprintf(&b, "search: %s%s\n", m.search, cursor)
	if m.mode == modeAdd {
		fmt.Fprintf(&b, "new task: %s_\n", m.input)
	}
	b.WriteString("\n")

	spec := query.ResolveSort(st.SortBy, st.SortDirection)
	fmt.Fprintf(&b, "  %-3s %-36s %-10s %-16s\n", "", header("Title", query.SortTitle, spec), header("Due", query.SortDueDate, spec), header("Created", query.SortCreationDate, spec))

	var rows []*model.Task
	if snap.Result != nil {
		rows = snap.Result.Data
	}
	if len(rows) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for i, t := range rows {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		check := "[ ]"
		if t.IsDone {
			check = "[x]"
		}
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format(model.DateLayout)
		}
		fmt.Fprintf(&b, "%s%s %-36s %-10s %-16s\n", pointer, check, truncate(t.Title, 36), due, t.CreationDate.Local().Format("2006-01-02 15:04"))
	}

	b.WriteString("\n")
	b.WriteString(Footer(snap))
	b.WriteString("\n")
	if snap.Err != nil {
		fmt.Fprintf(&b, "error: %v\n", snap.Err)
	} else if m.note != "" {
		b.WriteString(m.note + "\n")
	}
	b.WriteString("1-3/s status  / search  t,u,x,c sort  h/l page  z size  a add  space toggle  d delete  q quit\n")
	return b.String()
}

// Footer shows paging, the total match count and pending tasks on this page.
func Footer(s normalizer.Snapshot) string {
	pages, total := 0, 0
	if s.Result != nil {
		pages, total = s.Result.TotalPages, s.Result.TotalRecords
	}
	busy := ""
	if s.Busy {
		busy = "  loading..."
	}
	return fmt.Sprintf("Page %d/%d  Size %d  Total: %d  Pending: %d%s",
		s.State.PageNumber, pages, s.State.PageSize, total, s.Pending(), busy)
}

func header(label string, f query.SortField, spec query.SortSpec) string {
	if spec.Field != f {
		return label
	}
	if spec.Desc {
		return label + " v"
	}
	return label + " ^"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
