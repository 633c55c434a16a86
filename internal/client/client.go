// Package client is the HTTP client for the task API. Failures come back in
// the same error taxonomy the server uses, so callers classify them with errs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

type TaskClient struct {
	baseURL string
	headers map[string]string
	http    *http.Client
}

func New(cfg Config) *TaskClient {
	cfg.applyDefaults()
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	tr.IdleConnTimeout = cfg.IdleConnTimeout
	return &TaskClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + bizConsts.API_PREFIX,
		headers: cfg.DefaultHeaders,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(tr,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return "todo.client " + r.Method + " " + r.URL.Path
				})),
		},
	}
}

// taskBody is the wire form of a mutation; dueDate is midnight UTC of the chosen day.
type taskBody struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	IsDone      bool       `json:"isDone"`
}

func (c *TaskClient) List(ctx context.Context, req model.PageRequest) (*model.PagedResult[*model.Task], error) {
	var out model.PagedResult[*model.Task]
	if err := c.do(ctx, http.MethodGet, "/Get", ListQuery(req), nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []*model.Task{}
	}
	return &out, nil
}

// ListQuery encodes a page request; empty optional fields are omitted.
func ListQuery(req model.PageRequest) url.Values {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(req.PageNumber))
	q.Set("pageSize", strconv.Itoa(req.PageSize))
	if req.SortBy != "" {
		q.Set("sortBy", req.SortBy)
	}
	if req.SortDirection != "" {
		q.Set("sortDirection", req.SortDirection)
	}
	if req.SearchText != "" {
		q.Set("searchText", req.SearchText)
	}
	if v := req.Status.QueryValue(); v != "" {
		q.Set("status", v)
	}
	return q
}

func (c *TaskClient) Get(ctx context.Context, id string) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodGet, "/GetById", url.Values{"id": {id}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TaskClient) GetAll(ctx context.Context) ([]*model.Task, error) {
	var out []*model.Task
	if err := c.do(ctx, http.MethodGet, "/GetAll", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskClient) Create(ctx context.Context, title string, description *string, dueDate *time.Time) (*model.Task, error) {
	body := taskBody{Title: title, Description: description, DueDate: model.NormalizeDueDate(dueDate)}
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/Create", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the full task; the server keeps creationDate.
func (c *TaskClient) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	body := taskBody{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     model.NormalizeDueDate(t.DueDate),
		IsDone:      t.IsDone,
	}
	var out model.Task
	if err := c.do(ctx, http.MethodPut, "/Update", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleStatus flips isDone and leaves every other field as the caller saw it.
func (c *TaskClient) ToggleStatus(ctx context.Context, t *model.Task) (*model.Task, error) {
	return c.Update(ctx, t.Toggled())
}

func (c *TaskClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/Delete", url.Values{"id": {id}}, nil, nil)
}

func (c *TaskClient) do(ctx context.Context, method, path string, q url.Values, body any, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// cancellation belongs to the caller and is not a transport failure
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logging.Debug(ctx, "task api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return errs.Transient(method+" "+path, err)
	}
	defer resp.Body.Close()
	logging.Debug(ctx, "task api request", zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(start)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Transient("read response", err)
	}
	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError rebuilds the server-side error kind from the status and the {"error": ...} body.
func statusError(status int, raw []byte) error {
	msg := gjson.GetBytes(raw, "error").String()
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusBadRequest:
		return &errs.ValidationError{Reason: msg}
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, errs.ErrNotFound)
	case status >= http.StatusInternalServerError:
		return errs.Transient(fmt.Sprintf("status %d", status), errors.New(msg))
	}
	return fmt.Errorf("task api status %d: %s", status, msg)
}
