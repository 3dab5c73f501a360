package model

import (
	"context"
	"errors"
	"time"
)

const (
	TitleMaxLen       = 20
	DescriptionMaxLen = 45

	// DateLayout is the layout of due dates both on input and in storage.
	DateLayout = "2006-01-02"
)

type Task struct {
	ID          int
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	City        string
	WeatherInfo string
}

func NewTask(title, description string, dueDate time.Time, city string) *Task {
	return &Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		City:        city,
	}
}

// TaskFilter narrows FetchTasks. Zero values mean "no constraint"; the date
// bounds are inclusive.
type TaskFilter struct {
	Completed *bool
	DueFrom   time.Time
	DueTo     time.Time
}

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository interface {
	CreateTask(ctx context.Context, task *Task) error
	FetchTasks(ctx context.Context, filter TaskFilter) ([]Task, error)
	FetchTaskByID(ctx context.Context, id int) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	RemoveTask(ctx context.Context, id int) error
}
