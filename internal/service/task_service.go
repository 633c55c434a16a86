package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/prometheus"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/cache"
	"github.com/nabeel-hussain/ToDoApp/internal/config"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/dao"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

const maxTitleLen = 256

type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

// TaskService validates requests, stamps ids and dates, and keeps the page cache coherent.
type TaskService struct {
	*core.BaseComponent
	Dao   dao.TaskDao     `infra:"dep:task_dao"`
	Cache cache.PageCache `infra:"dep:task_page_cache?"`

	maxPageSize int
	now         func() time.Time
	newID       func() string
	tracer      trace.Tracer
}

func NewTaskService(cfg *config.TodoConfig) *TaskService {
	maxSize := 100
	if cfg != nil && cfg.MaxPageSize > 0 {
		maxSize = cfg.MaxPageSize
	}
	return &TaskService{
		BaseComponent: core.NewBaseComponent(bizConsts.COMP_SVC_TASK),
		maxPageSize:   maxSize,
		now:           time.Now,
		newID:         uuid.NewString,
		tracer:        otel.Tracer("todo/service"),
	}
}

// SetClock replaces the time source; tests only.
func (s *TaskService) SetClock(now func() time.Time) { s.now = now }

func (s *TaskService) Start(ctx context.Context) error { return s.BaseComponent.Start(ctx) }
func (s *TaskService) Stop(ctx context.Context) error  { return s.BaseComponent.Stop(ctx) }

func (s *TaskService) List(ctx context.Context, req model.PageRequest) (res *model.PagedResult[*model.Task], err error) {
	ctx, done := s.begin(ctx, "List",
		attribute.Int("page_number", req.PageNumber),
		attribute.Int("page_size", req.PageSize),
		attribute.String("status", req.Status.String()))
	defer func() { done(err) }()

	if err := s.checkPage(req); err != nil {
		return nil, err
	}
	// the generation is pinned before the store read; see cache.PageCache
	var (
		gen       int64
		cacheable bool
	)
	if s.Cache != nil {
		var cerr error
		if gen, cerr = s.Cache.Generation(ctx); cerr != nil {
			logging.Warn(ctx, "task page cache generation read failed", zap.Error(cerr))
		} else {
			cacheable = true
			page, hit, cerr := s.Cache.Get(ctx, gen, req)
			if cerr != nil {
				logging.Warn(ctx, "task page cache read failed", zap.Error(cerr))
			} else if hit {
				trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("cache_hit", true))
				return page, nil
			}
		}
	}

	list, total, err := s.Dao.ListPaged(ctx, req)
	if err != nil {
		return nil, err
	}
	res = model.NewPagedResult(list, req.PageNumber, req.PageSize, int(total))

	if cacheable {
		if cerr := s.Cache.Put(ctx, gen, req, res); cerr != nil {
			logging.Warn(ctx, "task page cache write failed", zap.Error(cerr))
		}
	}
	return res, nil
}

func (s *TaskService) checkPage(req model.PageRequest) error {
	switch {
	case req.PageNumber < 1:
		return errs.Invalid("pageNumber", "must be >= 1, got %d", req.PageNumber)
	case req.PageSize < 1:
		return errs.Invalid("pageSize", "must be >= 1, got %d", req.PageSize)
	case req.PageSize > s.maxPageSize:
		return errs.Invalid("pageSize", "must be <= %d, got %d", s.maxPageSize, req.PageSize)
	}
	return nil
}

func (s *TaskService) Get(ctx context.Context, id string) (t *model.Task, err error) {
	ctx, done := s.begin(ctx, "Get", attribute.String("task_id", id))
	defer func() { done(err) }()
	if strings.TrimSpace(id) == "" {
		return nil, errs.Invalid("id", "required")
	}
	return s.Dao.Get(ctx, id)
}

func (s *TaskService) ListAll(ctx context.Context) (list []*model.Task, err error) {
	ctx, done := s.begin(ctx, "ListAll")
	defer func() { done(err) }()
	return s.Dao.ListAll(ctx)
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (t *model.Task, err error) {
	ctx, done := s.begin(ctx, "Create")
	defer func() { done(err) }()

	title, err := checkTitle(in.Title)
	if err != nil {
		return nil, err
	}
	t = &model.Task{
		ID:           s.newID(),
		Title:        title,
		Description:  in.Description,
		DueDate:      model.NormalizeDueDate(in.DueDate),
		CreationDate: s.now().UTC(),
	}
	if err := s.Dao.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	logging.Info(ctx, "task created", zap.String("task_id", t.ID))
	return t, nil
}

// Update replaces title, description, dueDate and isDone; creationDate is owned by the store.
func (s *TaskService) Update(ctx context.Context, in *model.Task) (t *model.Task, err error) {
	if in == nil {
		return nil, errs.Invalid("body", "required")
	}
	ctx, done := s.begin(ctx, "Update", attribute.String("task_id", in.ID))
	defer func() { done(err) }()

	if strings.TrimSpace(in.ID) == "" {
		return nil, errs.Invalid("id", "required")
	}
	title, err := checkTitle(in.Title)
	if err != nil {
		return nil, err
	}
	next := in.Clone()
	next.Title = title
	next.DueDate = model.NormalizeDueDate(in.DueDate)
	t, err = s.Dao.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "Delete", attribute.String("task_id", id))
	defer func() { done(err) }()
	if strings.TrimSpace(id) == "" {
		return errs.Invalid("id", "required")
	}
	if err := s.Dao.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TaskService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		logging.Warn(ctx, "task page cache invalidate failed", zap.Error(err))
	}
}

func checkTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", errs.Invalid("title", "must not be blank")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", errs.Invalid("title", "must be at most %d characters", maxTitleLen)
	}
	return title, nil
}

// begin opens a span and returns the closer that records the outcome in both
// the span and the prometheus metrics.
func (s *TaskService) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "todo.service."+op, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(err error) {
		result := resultLabel(err)
		if err != nil {
			span.RecordError(err)
			if result == "error" || result == "unavailable" {
				span.SetStatus(codes.Error, err.Error())
			}
		}
		span.End()
		observe(op, result, time.Since(start))
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsValidation(err):
		return "invalid"
	case errs.IsNotFound(err):
		return "not_found"
	case errs.IsTransient(err):
		return "unavailable"
	}
	return "error"
}

func observe(op, result string, d time.Duration) {
	m := prometheus.C()
	if m == nil {
		return
	}
	op = strings.ToLower(op)
	m.NewCounter("task_operations_total", "Task service operations by result.", []string{"op", "result"}).
		WithLabelValues(op, result).Inc()
	m.NewHistogram("task_query_duration_seconds", "Task service latency.", []string{"op"}, nil).
		WithLabelValues(op).Observe(d.Seconds())
}
