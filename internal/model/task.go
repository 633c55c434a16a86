package model

import "time"

// Task is the to-do entity. DueDate is always midnight UTC when set.
type Task struct {
	ID           string     `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Title        string     `gorm:"column:title;type:varchar(256);not null" json:"title"`
	Description  *string    `gorm:"column:description;type:text" json:"description"`
	DueDate      *time.Time `gorm:"column:due_date" json:"dueDate"`
	IsDone       bool       `gorm:"column:is_done;not null;default:false" json:"isDone"`
	CreationDate time.Time  `gorm:"column:creation_date;not null;<-:create" json:"creationDate"`
}

func (Task) TableName() string { return "todo_tasks" }

// Clone returns a deep copy so callers never share pointer fields with the store.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// Toggled is the status-toggle update: same task, isDone flipped.
func (t *Task) Toggled() *Task {
	c := t.Clone()
	c.IsDone = !c.IsDone
	return c
}
