package dao

import (
	"context"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	"github.com/nabeel-hussain/ToDoApp/internal/errs"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

type TaskDao interface {
	// Embed component so registry builders can return it where core.Component is required.
	core.Component

	Create(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, id string) (*model.Task, error)
	// Update replaces every mutable column and returns the stored row; creation_date is kept.
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*model.Task, error)
	// ListPaged returns one page plus the pre-pagination match count.
	ListPaged(ctx context.Context, req model.PageRequest) ([]*model.Task, int64, error)
}

// classify maps storage failures onto the service error kinds. Errors that
// already carry a kind pass through; every other store failure is transient.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errs.IsNotFound(err), errs.IsValidation(err), errs.IsTransient(err):
		return err
	}
	return errs.Transient(op, err)
}
