package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/normalizer"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

// memAPI serves both controller interfaces from a slice.
type memAPI struct {
	mu    sync.Mutex
	tasks []*model.Task
}

func (a *memAPI) List(_ context.Context, req model.PageRequest) (*model.PagedResult[*model.Task], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return query.Execute(a.tasks, req), nil
}

func (a *memAPI) Create(_ context.Context, title string, desc *string, due *time.Time) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := &model.Task{ID: title, Title: title, Description: desc, DueDate: due, CreationDate: time.Now().UTC()}
	a.tasks = append(a.tasks, t)
	return t, nil
}

func (a *memAPI) Update(_ context.Context, t *model.Task) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, old := range a.tasks {
		if old.ID == t.ID {
			a.tasks[i] = t.Clone()
			return t, nil
		}
	}
	return nil, nil
}

func (a *memAPI) ToggleStatus(ctx context.Context, t *model.Task) (*model.Task, error) {
	return a.Update(ctx, t.Toggled())
}

func (a *memAPI) Delete(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, t := range a.tasks {
		if t.ID == id {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func settle(t *testing.T, c *normalizer.Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Snapshot().Busy {
		if time.Now().After(deadline) {
			t.Fatalf("controller stayed busy")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func newModel(t *testing.T, api *memAPI) (*Model, *normalizer.Controller) {
	t.Helper()
	c := normalizer.NewController(api, api, normalizer.WithDebounce(10*time.Millisecond))
	t.Cleanup(c.Close)
	m := New(c, nil)
	m.Init()
	settle(t, c)
	return m, c
}

func TestTabsAndDropdownShareStatus(t *testing.T) {
	m, c := newModel(t, &memAPI{})
	m.Update(keys("3"))
	if c.Snapshot().State.Status != model.StatusCompleted {
		t.Fatalf("tab 3 should select completed")
	}
	m.Update(keys("s"))
	if c.Snapshot().State.Status != model.StatusAll {
		t.Fatalf("dropdown should cycle completed -> all")
	}
	if !strings.Contains(m.View(), "[1 All]") {
		t.Fatalf("tab highlight not updated:\n%s", m.View())
	}
}

func TestSortKeyTogglesDirection(t *testing.T) {
	m, c := newModel(t, &memAPI{})
	m.Update(keys("u"))
	if st := c.Snapshot().State; st.SortBy != "dueDate" || st.SortDirection != "asc" {
		t.Fatalf("first press: %+v", st)
	}
	m.Update(keys("u"))
	if st := c.Snapshot().State; st.SortDirection != "desc" {
		t.Fatalf("second press: %+v", st)
	}
}

func TestAddToggleDeleteAndFooter(t *testing.T) {
	api := &memAPI{}
	m, c := newModel(t, api)

	m.Update(keys("a"))
	for _, r := range "Buy Milk" {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(keys(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should return the create command")
	}
	if msg := cmd().(mutatedMsg); msg.err != nil {
		t.Fatalf("create: %v", msg.err)
	}
	settle(t, c)
	if got := Footer(c.Snapshot()); !strings.Contains(got, "Total: 1") || !strings.Contains(got, "Pending: 1") {
		t.Fatalf("footer after add: %s", got)
	}
	if api.tasks[0].DueDate == nil || api.tasks[0].Title != "Buy Milk" {
		t.Fatalf("added task %+v should default its due date", api.tasks[0])
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	cmd()
	settle(t, c)
	if got := Footer(c.Snapshot()); !strings.Contains(got, "Pending: 0") {
		t.Fatalf("footer after toggle: %s", got)
	}

	_, cmd = m.Update(keys("d"))
	cmd()
	settle(t, c)
	if got := Footer(c.Snapshot()); !strings.Contains(got, "Total: 0") {
		t.Fatalf("footer after delete: %s", got)
	}
}

func TestParseAddInput(t *testing.T) {
	now := time.Date(2024, 12, 18, 23, 59, 0, 0, time.FixedZone("X", -5*3600))
	title, due, err := ParseAddInput("  Buy Milk ", now)
	if err != nil || title != "Buy Milk" || due.Format(model.DateLayout) != "2024-12-18" {
		t.Fatalf("default: %q %s %v", title, due, err)
	}
	title, due, err = ParseAddInput("Pay rent @2025-01-01", now)
	if err != nil || title != "Pay rent" || due.Format(model.DateLayout) != "2025-01-01" {
		t.Fatalf("explicit: %q %s %v", title, due, err)
	}
	if _, _, err := ParseAddInput("x @soon", now); err == nil {
		t.Fatalf("bad date accepted")
	}
	if _, _, err := ParseAddInput("   ", now); err == nil {
		t.Fatalf("blank title accepted")
	}
}
