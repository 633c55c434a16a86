package dao

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

func TestMemoryDaoCRUD(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryTaskDao()
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	if err := d.Create(ctx, &model.Task{ID: "a", Title: "first", CreationDate: created}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.Create(ctx, &model.Task{ID: "a", Title: "dup"}); err == nil {
		t.Fatalf("duplicate id accepted")
	}

	got, err := d.Update(ctx, &model.Task{ID: "a", Title: "renamed", IsDone: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.CreationDate.Equal(created) || got.Title != "renamed" || !got.IsDone {
		t.Fatalf("update result %+v", got)
	}
	if _, err := d.Update(ctx, &model.Task{ID: "missing"}); !errs.IsNotFound(err) {
		t.Fatalf("update missing: %v", err)
	}

	got.Title = "mutated outside"
	again, _ := d.Get(ctx, "a")
	if again.Title != "renamed" {
		t.Fatalf("store aliased returned value")
	}

	if err := d.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := d.Delete(ctx, "a"); !errs.IsNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := d.Get(ctx, "a"); !errs.IsNotFound(err) {
		t.Fatalf("get deleted: %v", err)
	}
}

func TestMemoryDaoListPaged(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryTaskDao()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"alpha", "beta", "gamma", "delta"} {
		_ = d.Create(ctx, &model.Task{ID: title, Title: title, IsDone: i%2 == 1, CreationDate: base.Add(time.Duration(i) * time.Hour)})
	}
	req := model.NewPageRequest()
	req.PageSize = 2
	req.Status = model.StatusPending
	list, total, err := d.ListPaged(ctx, req)
	if err != nil || total != 2 || len(list) != 2 || list[0].ID != "gamma" || list[1].ID != "alpha" {
		t.Fatalf("got %v total=%d err=%v", list, total, err)
	}

	all, _ := d.ListAll(ctx)
	if len(all) != 4 || all[0].ID != "delta" {
		t.Fatalf("ListAll should be newest first, got %s", all[0].ID)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":  "plain",
		"50%":    `50\%`,
		"a_b":    `a\_b`,
		`c:\tmp`: `c:\\tmp`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestTaskColumnsCoverEverySortField(t *testing.T) {
	for _, f := range []query.SortField{query.SortTitle, query.SortDueDate, query.SortIsDone, query.SortCreationDate} {
		if taskColumns[f] == "" {
			t.Fatalf("no column for %s", f)
		}
	}
}

func TestClassify(t *testing.T) {
	if classify("get task", nil) != nil {
		t.Fatalf("nil must stay nil")
	}

	transient := []error{
		errors.New(`pq: relation "todo_tasks" does not exist`),
		driver.ErrBadConn,
		context.DeadlineExceeded,
		errors.New("Error 1062: Duplicate entry"),
	}
	for _, cause := range transient {
		got := classify("list tasks", cause)
		if !errs.IsTransient(got) || !errors.Is(got, cause) {
			t.Fatalf("%v: got %v, want transient wrapping the cause", cause, got)
		}
	}

	kept := []error{
		errs.NotFound("task", "a"),
		errs.Invalid("title", "blank"),
		errs.Transient("count tasks", errors.New("reset")),
	}
	for _, err := range kept {
		if got := classify("update task", err); got != err {
			t.Fatalf("%v was rewrapped as %v", err, got)
		}
	}
}
