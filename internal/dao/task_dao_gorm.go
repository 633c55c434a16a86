package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/gormdb"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

type taskDaoImpl struct {
	*core.BaseComponent
	GormComp *gormdb.GormComponent `infra:"dep:gorm"`
	db       *gorm.DB
	dsName   string
}

func NewTaskDao(dsName string, deps ...string) TaskDao {
	return &taskDaoImpl{
		BaseComponent: core.NewBaseComponent(bizConsts.COMP_DAO_TASK, deps...),
		dsName:        dsName,
	}
}

func (d *taskDaoImpl) Start(ctx context.Context) error {
	if err := d.BaseComponent.Start(ctx); err != nil {
		return err
	}
	db, err := d.GormComp.GetDB(d.dsName)
	if err != nil {
		return fmt.Errorf("get gorm db %s failed: %w", d.dsName, err)
	}
	d.db = db
	logging.Info(ctx, "task dao ready", zap.String("datasource", d.dsName), zap.String("dialect", db.Dialector.Name()))
	return nil
}

func (d *taskDaoImpl) Stop(ctx context.Context) error {
	return d.BaseComponent.Stop(ctx)
}

func (d *taskDaoImpl) Create(ctx context.Context, t *model.Task) error {
	return classify("create task", d.db.WithContext(ctx).Create(t).Error)
}

func (d *taskDaoImpl) Get(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("task", id)
		}
		return nil, classify("get task", err)
	}
	return &t, nil
}

// Update reads then writes inside one transaction. RowsAffected is not used for
// existence because MySQL reports 0 when the new values equal the old ones.
func (d *taskDaoImpl) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	var stored model.Task
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", t.ID).First(&stored).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"due_date":    t.DueDate,
			"is_done":     t.IsDone,
		}
		return tx.Model(&model.Task{}).Where("id = ?", t.ID).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("task", t.ID)
		}
		return nil, classify("update task", err)
	}
	stored.Title, stored.Description, stored.DueDate, stored.IsDone = t.Title, t.Description, t.DueDate, t.IsDone
	return &stored, nil
}

func (d *taskDaoImpl) Delete(ctx context.Context, id string) error {
	res := d.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return classify("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("task", id)
	}
	return nil
}

func (d *taskDaoImpl) ListAll(ctx context.Context) ([]*model.Task, error) {
	var list []*model.Task
	q := applyTaskOrder(d.db.WithContext(ctx).Model(&model.Task{}), d.dialect(), query.FallbackSort)
	if err := q.Find(&list).Error; err != nil {
		return nil, classify("list tasks", err)
	}
	return list, nil
}

func (d *taskDaoImpl) ListPaged(ctx context.Context, req model.PageRequest) ([]*model.Task, int64, error) {
	dialect := d.dialect()
	c := query.CriteriaOf(req)

	var total int64
	if err := applyTaskFilters(d.db.WithContext(ctx).Model(&model.Task{}), dialect, c).Count(&total).Error; err != nil {
		return nil, 0, classify("count tasks", err)
	}
	list := []*model.Task{}
	if int64(query.Offset(req)) >= total {
		return list, total, nil
	}
	q := applyTaskFilters(d.db.WithContext(ctx).Model(&model.Task{}), dialect, c)
	q = applyTaskOrder(q, dialect, query.ResolveSort(req.SortBy, req.SortDirection))
	q = q.Offset(query.Offset(req)).Limit(req.PageSize)
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, classify("list tasks", err)
	}
	return list, total, nil
}

func (d *taskDaoImpl) dialect() string {
	return d.db.Dialector.Name()
}

var taskColumns = map[query.SortField]string{
	query.SortTitle:        "title",
	query.SortDueDate:      "due_date",
	query.SortIsDone:       "is_done",
	query.SortCreationDate: "creation_date",
}

// applyTaskFilters mirrors query.Criteria.Match in SQL.
// MySQL's default collation is case-insensitive, so the pattern is compared as BINARY there.
func applyTaskFilters(q *gorm.DB, dialect string, c query.Criteria) *gorm.DB {
	if done, ok := c.Status.IsDone(); ok {
		q = q.Where("is_done = ?", done)
	}
	if c.Search != "" {
		like := "LIKE"
		if dialect == gormdb.DriverMySQL {
			like = "LIKE BINARY"
		}
		pattern := "%" + escapeLike(c.Search) + "%"
		q = q.Where(fmt.Sprintf("(title %[1]s ? OR (description IS NOT NULL AND description %[1]s ?))", like), pattern, pattern)
	}
	return q
}

// applyTaskOrder sorts NULL due dates first ascending and last descending on
// every dialect, then breaks ties by id.
func applyTaskOrder(q *gorm.DB, dialect string, spec query.SortSpec) *gorm.DB {
	col := taskColumns[spec.Field]
	dir := "ASC"
	if spec.Desc {
		dir = "DESC"
	}
	order := col + " " + dir
	if dialect == gormdb.DriverPostgres && spec.Field == query.SortDueDate {
		if spec.Desc {
			order += " NULLS LAST"
		} else {
			order += " NULLS FIRST"
		}
	}
	return q.Order(order).Order("id ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
