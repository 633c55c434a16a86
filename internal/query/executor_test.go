package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func task(id, title string, created int) *model.Task {
	return &model.Task{ID: id, Title: title, CreationDate: base.Add(time.Duration(created) * time.Minute)}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func req(page, size int) model.PageRequest {
	r := model.NewPageRequest()
	r.PageNumber, r.PageSize = page, size
	return r
}

func ids(ts []*model.Task) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += ","
		}
		s += t.ID
	}
	return s
}

func TestSearchIsCaseSensitive(t *testing.T) {
	desc := "from the corner shop"
	tasks := []*model.Task{
		task("1", "Buy Milk", 1),
		{ID: "2", Title: "errand", Description: &desc, CreationDate: base},
		task("3", "milkshake", 2),
		task("4", "BuyMilk", 3),
	}
	cases := []struct {
		search string
		want   string
	}{
		{"milk", "3"},
		{"Milk", "4,1"},
		{" Milk", "1"},
		{"  Milk  ", ""},
		{"corner", "2"},
		{"Corner", ""},
		{"", "4,3,1,2"},
		{"   ", "4,3,1,2"},
	}
	for _, tc := range cases {
		r := req(1, 10)
		r.SearchText = tc.search
		got := Execute(tasks, r)
		if ids(got.Data) != tc.want {
			t.Fatalf("search %q: got %s want %s", tc.search, ids(got.Data), tc.want)
		}
	}
}

func TestSortByDueDateDesc(t *testing.T) {
	a := task("a", "a", 0)
	a.DueDate = day(2024, 1, 1)
	b := task("b", "b", 1)
	b.DueDate = day(2024, 3, 1)
	c := task("c", "c", 2)
	c.DueDate = day(2024, 2, 1)
	n := task("n", "n", 3)

	r := req(1, 10)
	r.SortBy, r.SortDirection = "dueDate", "desc"
	if got := ids(Execute([]*model.Task{a, b, c, n}, r).Data); got != "b,c,a,n" {
		t.Fatalf("desc: got %s", got)
	}
	r.SortDirection = "asc"
	if got := ids(Execute([]*model.Task{a, b, c, n}, r).Data); got != "n,a,c,b" {
		t.Fatalf("asc: got %s", got)
	}
}

func TestOmittedSortMatchesCreationDateDesc(t *testing.T) {
	tasks := []*model.Task{task("x", "x", 5), task("y", "y", 1), task("z", "z", 9), task("w", "w", 5)}
	implicit := Execute(tasks, req(1, 10))
	r := req(1, 10)
	r.SortBy, r.SortDirection = "creationDate", "desc"
	explicit := Execute(tasks, r)
	if ids(implicit.Data) != ids(explicit.Data) || ids(implicit.Data) != "z,w,x,y" {
		t.Fatalf("implicit %s explicit %s", ids(implicit.Data), ids(explicit.Data))
	}
	r.SortBy = "priority"
	if got := ids(Execute(tasks, r).Data); got != "z,w,x,y" {
		t.Fatalf("unknown column should fall back, got %s", got)
	}
}

func TestResolveSort(t *testing.T) {
	cases := []struct {
		by, dir string
		want    SortSpec
	}{
		{"", "", FallbackSort},
		{"", "asc", FallbackSort},
		{"bogus", "asc", FallbackSort},
		{"TITLE", "", SortSpec{SortTitle, false}},
		{"isdone", "desc", SortSpec{SortIsDone, true}},
		{"DueDate", "DESC", SortSpec{SortDueDate, true}},
		{"creationDate", "descending", SortSpec{SortCreationDate, false}},
	}
	for _, tc := range cases {
		if got := ResolveSort(tc.by, tc.dir); got != tc.want {
			t.Fatalf("(%q,%q): got %+v want %+v", tc.by, tc.dir, got, tc.want)
		}
	}
}

func TestPagingScenario(t *testing.T) {
	tasks := make([]*model.Task, 25)
	for i := range tasks {
		tasks[i] = task(fmt.Sprintf("t%02d", i), "task", i)
	}
	cases := []struct {
		page, wantLen int
		prev, next    bool
	}{
		{1, 10, false, true},
		{2, 10, true, true},
		{3, 5, true, false},
		{4, 0, true, false},
	}
	for _, tc := range cases {
		got := Execute(tasks, req(tc.page, 10))
		if len(got.Data) != tc.wantLen || got.TotalRecords != 25 || got.TotalPages != 3 ||
			got.HasPreviousPage != tc.prev || got.HasNextPage != tc.next {
			t.Fatalf("page %d: len=%d %+v", tc.page, len(got.Data), got)
		}
	}
	// creation desc, so page 1 starts with the newest
	if first := Execute(tasks, req(1, 10)).Data[0].ID; first != "t24" {
		t.Fatalf("first = %s", first)
	}
}

func TestPageLengthProperty(t *testing.T) {
	tasks := make([]*model.Task, 17)
	for i := range tasks {
		tasks[i] = task(fmt.Sprint(i), "x", i)
	}
	for size := 1; size <= 20; size++ {
		for page := 1; page <= 20; page++ {
			got := Execute(tasks, req(page, size))
			want := min(size, 17-(page-1)*size)
			if want < 0 {
				want = 0
			}
			if len(got.Data) != want {
				t.Fatalf("page=%d size=%d: len %d want %d", page, size, len(got.Data), want)
			}
		}
	}
}

func TestStatusPartitions(t *testing.T) {
	tasks := make([]*model.Task, 9)
	for i := range tasks {
		tasks[i] = task(fmt.Sprint(i), "x", i)
		tasks[i].IsDone = i%3 == 0
	}
	count := func(s model.StatusFilter) int {
		r := req(1, 100)
		r.Status = s
		return Execute(tasks, r).TotalRecords
	}
	all, pending, done := count(model.StatusAll), count(model.StatusPending), count(model.StatusCompleted)
	if all != 9 || pending != 6 || done != 3 || pending+done != all {
		t.Fatalf("all=%d pending=%d done=%d", all, pending, done)
	}
}

func TestTiesBrokenByID(t *testing.T) {
	tasks := []*model.Task{task("c", "same", 0), task("a", "same", 0), task("b", "same", 0)}
	for _, dir := range []string{"asc", "desc"} {
		r := req(1, 10)
		r.SortBy, r.SortDirection = "title", dir
		if got := ids(Execute(tasks, r).Data); got != "a,b,c" {
			t.Fatalf("%s: got %s", dir, got)
		}
	}
}

func TestExecuteDoesNotReorderInput(t *testing.T) {
	tasks := []*model.Task{task("1", "b", 0), task("2", "a", 1)}
	r := req(1, 10)
	r.SortBy = "title"
	Execute(tasks, r)
	if ids(tasks) != "1,2" {
		t.Fatalf("input mutated: %s", ids(tasks))
	}
}
