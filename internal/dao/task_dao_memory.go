package dao

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

// memoryTaskDao keeps tasks in insertion order and answers page queries with query.Execute.
// Stored values are cloned on the way in and out.
type memoryTaskDao struct {
	*core.BaseComponent

	mu    sync.RWMutex
	tasks []*model.Task
}

func NewMemoryTaskDao(deps ...string) TaskDao {
	return &memoryTaskDao{BaseComponent: core.NewBaseComponent(bizConsts.COMP_DAO_TASK, deps...)}
}

func (d *memoryTaskDao) indexOf(id string) int {
	return slices.IndexFunc(d.tasks, func(t *model.Task) bool { return t.ID == id })
}

func (d *memoryTaskDao) Create(_ context.Context, t *model.Task) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexOf(t.ID) >= 0 {
		return fmt.Errorf("task %s already exists", t.ID)
	}
	d.tasks = append(d.tasks, t.Clone())
	return nil
}

func (d *memoryTaskDao) Get(_ context.Context, id string) (*model.Task, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.indexOf(id)
	if i < 0 {
		return nil, errs.NotFound("task", id)
	}
	return d.tasks[i].Clone(), nil
}

func (d *memoryTaskDao) Update(_ context.Context, t *model.Task) (*model.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(t.ID)
	if i < 0 {
		return nil, errs.NotFound("task", t.ID)
	}
	next := t.Clone()
	next.CreationDate = d.tasks[i].CreationDate
	d.tasks[i] = next
	return next.Clone(), nil
}

func (d *memoryTaskDao) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(id)
	if i < 0 {
		return errs.NotFound("task", id)
	}
	d.tasks = slices.Delete(d.tasks, i, i+1)
	return nil
}

func (d *memoryTaskDao) ListAll(_ context.Context) ([]*model.Task, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*model.Task, len(d.tasks))
	for i, t := range d.tasks {
		out[i] = t.Clone()
	}
	slices.SortStableFunc(out, func(a, b *model.Task) int { return query.Compare(a, b, query.FallbackSort) })
	return out, nil
}

func (d *memoryTaskDao) ListPaged(_ context.Context, req model.PageRequest) ([]*model.Task, int64, error) {
	d.mu.RLock()
	res := query.Execute(d.tasks, req)
	d.mu.RUnlock()
	out := make([]*model.Task, len(res.Data))
	for i, t := range res.Data {
		out[i] = t.Clone()
	}
	return out, int64(res.TotalRecords), nil
}
