package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/config"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/service"
	"github.com/nabeel-hussain/ToDoApp/internal/validation"
)

type TaskController struct {
	*core.BaseComponent
	Svc *service.TaskService `infra:"dep:task_service"`

	defaultPageSize int
}

func NewTaskController(cfg *config.TodoConfig) *TaskController {
	size := model.DefaultPageSize
	if cfg != nil && cfg.DefaultPageSize > 0 {
		size = cfg.DefaultPageSize
	}
	return &TaskController{
		BaseComponent:   core.NewBaseComponent(bizConsts.COMP_CTRL_TASK),
		defaultPageSize: size,
	}
}

func (c *TaskController) Start(ctx context.Context) error { return c.BaseComponent.Start(ctx) }
func (c *TaskController) Stop(ctx context.Context) error  { return c.BaseComponent.Stop(ctx) }

// wire forms of the mutation bodies; dates are parsed after schema validation

type createBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

type updateBody struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	IsDone      bool    `json:"isDone"`
}

// ---- handlers ----

// GET /api/ToDoTask/Get
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	req, err := c.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := c.Svc.List(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (c *TaskController) pageRequest(r *http.Request) (model.PageRequest, error) {
	req := model.NewPageRequest()
	req.PageSize = c.defaultPageSize
	var err error
	if req.PageNumber, err = parseIntParam(r, "pageNumber", req.PageNumber); err != nil {
		return req, err
	}
	if req.PageSize, err = parseIntParam(r, "pageSize", req.PageSize); err != nil {
		return req, err
	}
	q := r.URL.Query()
	req.SortBy = q.Get("sortBy")
	if dir := q.Get("sortDirection"); dir != "" {
		req.SortDirection = dir
	}
	req.SearchText = q.Get("searchText")
	if req.Status, err = model.ParseStatusFilter(q.Get("status")); err != nil {
		return req, errs.Invalid("status", "%v", err)
	}
	return req, nil
}

// POST /api/ToDoTask/Create
func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.ValidateCreate(raw); err != nil {
		writeError(w, r, err)
		return
	}
	var body createBody
	if err := json.Unmarshal(raw, &body); err != nil {
		writeError(w, r, errs.Invalid("body", "%v", err))
		return
	}
	due, err := dueDateOf(body.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := c.Svc.Create(r.Context(), service.CreateTaskInput{Title: body.Title, Description: body.Description, DueDate: due})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// PUT /api/ToDoTask/Update
func (c *TaskController) Update(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.ValidateUpdate(raw); err != nil {
		writeError(w, r, err)
		return
	}
	var body updateBody
	if err := json.Unmarshal(raw, &body); err != nil {
		writeError(w, r, errs.Invalid("body", "%v", err))
		return
	}
	due, err := dueDateOf(body.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := c.Svc.Update(r.Context(), &model.Task{
		ID:          body.ID,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     due,
		IsDone:      body.IsDone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DELETE /api/ToDoTask/Delete?id=
func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if err := c.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GET /api/ToDoTask/GetById?id=
func (c *TaskController) GetByID(w http.ResponseWriter, r *http.Request) {
	t, err := c.Svc.Get(r.Context(), strings.TrimSpace(r.URL.Query().Get("id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GET /api/ToDoTask/GetAll
func (c *TaskController) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := c.Svc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*model.Task{}
	}
	writeJSON(w, http.StatusOK, list)
}

func dueDateOf(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := model.ParseDueDate(*s)
	if err != nil {
		return nil, errs.Invalid("dueDate", "%v", err)
	}
	return d, nil
}
