// Package tui is the terminal front end: a paged task grid driven by the
// normalizer controller.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/normalizer"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
)

const mutationTimeout = 10 * time.Second

// sort keys map to column names understood by the executor
var sortKeys = map[string]string{
	"t": "title",
	"u": "dueDate",
	"x": "isDone",
	"c": "creationDate",
}

type refreshedMsg struct{}

type mutatedMsg struct {
	note string
	err  error
}

type Model struct {
	ctrl    *normalizer.Controller
	changed <-chan struct{}
	now     func() time.Time

	mode   mode
	search string
	input  string
	cursor int
	note   string
	width  int
}

// New wires a model to ctrl; changed must receive a value whenever the
// controller publishes a snapshot (see Notifier).
func New(ctrl *normalizer.Controller, changed <-chan struct{}) *Model {
	return &Model{ctrl: ctrl, changed: changed, now: time.Now}
}

// Notifier returns a subscriber for normalizer.WithSubscriber that coalesces
// snapshots into a one-slot signal channel, plus that channel.
func Notifier() (func(normalizer.Snapshot), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return func(normalizer.Snapshot) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}, ch
}

func (m *Model) Init() tea.Cmd {
	m.ctrl.Refresh()
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changed == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.changed; !ok {
			return nil
		}
		return refreshedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case refreshedMsg:
		m.clampCursor()
		return m, m.waitForChange()
	case mutatedMsg:
		if msg.err != nil {
			m.note = "error: " + msg.err.Error()
		} else {
			m.note = msg.note
		}
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m, m.updateSearch(msg)
		case modeAdd:
			return m, m.updateAdd(msg)
		}
		return m, m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(k tea.KeyMsg) tea.Cmd {
	snap := m.ctrl.Snapshot()
	st := snap.State
	key := k.String()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "/":
		m.mode = modeSearch
	case "a":
		m.mode, m.input = modeAdd, ""
	case "1", "2", "3":
		m.ctrl.Dispatch(normalizer.TabSelected{Index: int(key[0] - '1')})
	case "s":
		next, _ := normalizer.StatusFromTab((normalizer.TabIndex(st.Status) + 1) % 3)
		m.ctrl.Dispatch(normalizer.DropdownSelected{Value: normalizer.DropdownValue(next)})
	case "t", "u", "x", "c":
		field := sortKeys[key]
		dir := "asc"
		if strings.EqualFold(st.SortBy, field) && st.SortDirection == "asc" {
			dir = "desc"
		}
		m.ctrl.Dispatch(normalizer.SortChanged{Field: field, Direction: dir})
	case "left", "h":
		if st.PageNumber > 1 {
			m.ctrl.Dispatch(normalizer.PageChanged{Page: st.PageNumber - 1})
		}
	case "right", "l":
		if snap.Result != nil && snap.Result.HasNextPage {
			m.ctrl.Dispatch(normalizer.PageChanged{Page: st.PageNumber + 1})
		}
	case "z":
		m.ctrl.Dispatch(normalizer.PageSizeChanged{Size: normalizer.NextPageSize(st.PageSize)})
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "r":
		m.ctrl.Refresh()
	case " ":
		if t := m.selected(); t != nil {
			return m.mutate("Task updated", func(ctx context.Context) error {
				_, err := m.ctrl.Toggle(ctx, t)
				return err
			})
		}
	case "d":
		if t := m.selected(); t != nil {
			id := t.ID
			return m.mutate("Task deleted", func(ctx context.Context) error { return m.ctrl.Remove(ctx, id) })
		}
	}
	return nil
}

func (m *Model) updateSearch(k tea.KeyMsg) tea.Cmd {
	switch k.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		return nil
	case tea.KeyBackspace:
		if r := []rune(m.search); len(r) > 0 {
			m.search = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.search += " "
	case tea.KeyRunes:
		m.search += string(k.Runes)
	default:
		return nil
	}
	m.ctrl.SearchInput(m.search)
	return nil
}

func (m *Model) updateAdd(k tea.KeyMsg) tea.Cmd {
	switch k.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
	case tea.KeyEnter:
		m.mode = modeBrowse
		title, due, err := ParseAddInput(m.input, m.now())
		if err != nil {
			m.note = "error: " + err.Error()
			return nil
		}
		return m.mutate("Task added", func(ctx context.Context) error {
			_, err := m.ctrl.Add(ctx, title, nil, &due)
			return err
		})
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(k.Runes)
	}
	return nil
}

func (m *Model) mutate(note string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return mutatedMsg{note: note, err: fn(ctx)}
	}
}

func (m *Model) rows() []*model.Task {
	if r := m.ctrl.Snapshot().Result; r != nil {
		return r.Data
	}
	return nil
}

func (m *Model) selected() *model.Task {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ParseAddInput reads "title" or "title @YYYY-MM-DD". Without a date the task
// is due today in the local calendar.
func ParseAddInput(raw string, now time.Time) (string, time.Time, error) {
	title := strings.TrimSpace(raw)
	due := model.Today(now, now.Location())
	if i := strings.LastIndex(title, " @"); i >= 0 {
		d, err := model.ParseDueDate(title[i+2:])
		if err != nil {
			return "", time.Time{}, err
		}
		if d != nil {
			due = *d
		}
		title = strings.TrimSpace(title[:i])
	}
	if title == "" {
		return "", time.Time{}, fmt.Errorf("title is required")
	}
	return title, due, nil
}
