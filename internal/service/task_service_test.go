package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/config"
	"github.com/nabeel-hussain/ToDoApp/internal/dao"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

type cacheKey struct {
	gen int64
	req model.PageRequest
}

// stubCache mirrors RedisPageCache: pages live under a generation and
// Invalidate only bumps it.
type stubCache struct {
	*core.BaseComponent
	gen         int64
	pages       map[cacheKey]*model.PagedResult[*model.Task]
	gets        int
	invalidated int
	failGet     bool
	failGen     bool
}

func newStubCache() *stubCache {
	return &stubCache{
		BaseComponent: core.NewBaseComponent("stub_cache"),
		pages:         map[cacheKey]*model.PagedResult[*model.Task]{},
	}
}

func (c *stubCache) Generation(context.Context) (int64, error) {
	if c.failGen {
		return 0, errors.New("redis down")
	}
	return c.gen, nil
}

func (c *stubCache) Get(_ context.Context, gen int64, req model.PageRequest) (*model.PagedResult[*model.Task], bool, error) {
	c.gets++
	if c.failGet {
		return nil, false, errors.New("redis down")
	}
	p, ok := c.pages[cacheKey{gen, req}]
	return p, ok, nil
}

func (c *stubCache) Put(_ context.Context, gen int64, req model.PageRequest, p *model.PagedResult[*model.Task]) error {
	c.pages[cacheKey{gen, req}] = p
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.invalidated++
	c.gen++
	return nil
}

// racingDao runs between once, after the page has been read from the store
// and before the service gets it back.
type racingDao struct {
	dao.TaskDao
	between func()
}

func (d *racingDao) ListPaged(ctx context.Context, req model.PageRequest) ([]*model.Task, int64, error) {
	list, total, err := d.TaskDao.ListPaged(ctx, req)
	if fn := d.between; fn != nil {
		d.between = nil
		fn()
	}
	return list, total, err
}

var fixedNow = time.Date(2024, 12, 18, 22, 30, 0, 0, time.FixedZone("EST", -5*3600))

func newService(t *testing.T) *TaskService {
	t.Helper()
	s := NewTaskService(config.Default())
	s.Dao = dao.NewMemoryTaskDao()
	s.SetClock(func() time.Time { return fixedNow })
	seq := 0
	s.newID = func() string { seq++; return fmt.Sprintf("id-%02d", seq) }
	return s
}

func page(n, size int) model.PageRequest {
	r := model.NewPageRequest()
	r.PageNumber, r.PageSize = n, size
	return r
}

func TestCreateStampsAndNormalizes(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	due := time.Date(2024, 12, 18, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	created, err := s.Create(ctx, CreateTaskInput{Title: "  Buy Milk ", DueDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "id-01" || created.Title != "Buy Milk" || created.IsDone {
		t.Fatalf("created = %+v", created)
	}
	if created.CreationDate.Location() != time.UTC || !created.CreationDate.Equal(fixedNow) {
		t.Fatalf("creationDate = %s", created.CreationDate)
	}
	back, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := back.DueDate.Format(model.DateLayout); got != "2024-12-18" || back.DueDate.Hour() != 0 {
		t.Fatalf("dueDate round-trip = %s", back.DueDate)
	}
}

func TestCreateRejectsBadTitle(t *testing.T) {
	s := newService(t)
	for _, title := range []string{"", "   ", strings.Repeat("x", 257)} {
		if _, err := s.Create(context.Background(), CreateTaskInput{Title: title}); !errs.IsValidation(err) {
			t.Fatalf("title %q: err=%v", title, err)
		}
	}
}

func TestUpdateKeepsCreationDate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	created, _ := s.Create(ctx, CreateTaskInput{Title: "a"})

	s.SetClock(func() time.Time { return fixedNow.Add(48 * time.Hour) })
	in := &model.Task{ID: created.ID, Title: "b", IsDone: true, CreationDate: time.Unix(0, 0)}
	got, err := s.Update(ctx, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.CreationDate.Equal(created.CreationDate) || got.Title != "b" || !got.IsDone {
		t.Fatalf("update result %+v", got)
	}

	if _, err := s.Update(ctx, &model.Task{ID: "nope", Title: "x"}); !errs.IsNotFound(err) {
		t.Fatalf("missing id: %v", err)
	}
	if _, err := s.Update(ctx, &model.Task{Title: "x"}); !errs.IsValidation(err) {
		t.Fatalf("empty id: %v", err)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	desc := "2%"
	created, _ := s.Create(ctx, CreateTaskInput{Title: "t", Description: &desc})
	toggled, err := s.Update(ctx, created.Toggled())
	if err != nil || !toggled.IsDone || *toggled.Description != "2%" || toggled.Title != "t" {
		t.Fatalf("toggle: %+v %v", toggled, err)
	}
}

func TestDelete(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	created, _ := s.Create(ctx, CreateTaskInput{Title: "a"})
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errs.IsNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.Delete(ctx, ""); !errs.IsValidation(err) {
		t.Fatalf("blank id: %v", err)
	}
}

func TestListRejectsBadPages(t *testing.T) {
	s := newService(t)
	cases := []struct{ page, size int }{{0, 10}, {-1, 10}, {1, 0}, {1, -5}, {1, 101}}
	for _, tc := range cases {
		if _, err := s.List(context.Background(), page(tc.page, tc.size)); !errs.IsValidation(err) {
			t.Fatalf("page=%d size=%d: err=%v", tc.page, tc.size, err)
		}
	}
	if _, err := s.List(context.Background(), page(1, 100)); err != nil {
		t.Fatalf("size 100 should pass: %v", err)
	}
}

func TestListUsesCacheAndMutationsInvalidate(t *testing.T) {
	s := newService(t)
	c := newStubCache()
	s.Cache = c
	ctx := context.Background()
	_, _ = s.Create(ctx, CreateTaskInput{Title: "a"})

	first, err := s.List(ctx, page(1, 10))
	if err != nil || first.TotalRecords != 1 {
		t.Fatalf("list: %+v %v", first, err)
	}
	second, _ := s.List(ctx, page(1, 10))
	if second != first {
		t.Fatalf("second list should be served from cache")
	}

	before := c.invalidated
	_, _ = s.Create(ctx, CreateTaskInput{Title: "b"})
	if c.invalidated != before+1 {
		t.Fatalf("create did not invalidate")
	}
	third, _ := s.List(ctx, page(1, 10))
	if third.TotalRecords != 2 {
		t.Fatalf("stale page after create: %+v", third)
	}
}

func TestListDegradesOnCacheError(t *testing.T) {
	s := newService(t)
	c := newStubCache()
	c.failGet = true
	s.Cache = c
	_, _ = s.Create(context.Background(), CreateTaskInput{Title: "a"})
	res, err := s.List(context.Background(), page(1, 10))
	if err != nil || res.TotalRecords != 1 {
		t.Fatalf("cache failure should fall through to the store: %+v %v", res, err)
	}
}

func TestResultLabel(t *testing.T) {
	cases := map[string]error{
		"ok":          nil,
		"invalid":     errs.Invalid("x", "bad"),
		"not_found":   errs.NotFound("task", "1"),
		"unavailable": errs.Transient("list", errors.New("conn reset")),
		"error":       errors.New("boom"),
	}
	for want, err := range cases {
		if got := resultLabel(err); got != want {
			t.Fatalf("%v: got %s want %s", err, got, want)
		}
	}
}

func TestListDoesNotCachePageOverlappedByMutation(t *testing.T) {
	s := newService(t)
	c := newStubCache()
	s.Cache = c
	ctx := context.Background()

	racing := &racingDao{TaskDao: s.Dao}
	s.Dao = racing
	racing.between = func() {
		if _, err := s.Create(ctx, CreateTaskInput{Title: "late"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first, err := s.List(ctx, page(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if first.TotalRecords != 0 {
		t.Fatalf("first read should predate the create: total=%d", first.TotalRecords)
	}
	second, err := s.List(ctx, page(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if second.TotalRecords != 1 {
		t.Fatalf("page read before the create was served after it: total=%d want 1", second.TotalRecords)
	}
}

func TestListSkipsCacheWhenGenerationUnavailable(t *testing.T) {
	s := newService(t)
	c := newStubCache()
	c.failGen = true
	s.Cache = c
	_, _ = s.Create(context.Background(), CreateTaskInput{Title: "a"})
	res, err := s.List(context.Background(), page(1, 10))
	if err != nil || res.TotalRecords != 1 {
		t.Fatalf("list: %+v %v", res, err)
	}
	if c.gets != 0 || len(c.pages) != 0 {
		t.Fatalf("cache used without a generation: gets=%d pages=%d", c.gets, len(c.pages))
	}
}
