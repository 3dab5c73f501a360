package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agalitsyn/todo-weather/internal/model"
	"github.com/agalitsyn/todo-weather/internal/validation"
)

func (a *App) AddTask(ctx context.Context) error {
	return a.runUseCase(ctx, "Error adding task", a.addTask)
}

func (a *App) ViewTasks(ctx context.Context) error {
	return a.runUseCase(ctx, "Error viewing tasks", func(ctx context.Context) error {
		return a.showTasks(ctx, model.TaskFilter{})
	})
}

func (a *App) CompleteTask(ctx context.Context) error {
	return a.runUseCase(ctx, "Error marking task as completed", a.completeTask)
}

func (a *App) RemoveTask(ctx context.Context) error {
	return a.runUseCase(ctx, "Error removing task", a.removeTask)
}

func (a *App) EditTask(ctx context.Context) error {
	return a.runUseCase(ctx, "Error editing task", a.editTask)
}

func (a *App) FilterByCompletion(ctx context.Context) error {
	return a.runUseCase(ctx, "Error filtering tasks by completion status", a.filterByCompletion)
}

func (a *App) FilterByDateRange(ctx context.Context) error {
	return a.runUseCase(ctx, "Error filtering tasks by date range", a.filterByDateRange)
}

func (a *App) addTask(ctx context.Context) error {
	title, err := a.con.prompt(ctx, fmt.Sprintf("Enter title (Maximum %d characters): ", model.TitleMaxLen))
	if err != nil {
		return err
	}
	if err := validation.CheckTitle(title); err != nil {
		return err
	}

	description, err := a.con.prompt(ctx, fmt.Sprintf("Enter description (Maximum %d characters): ", model.DescriptionMaxLen))
	if err != nil {
		return err
	}
	if err := validation.CheckDescription(description); err != nil {
		return err
	}

	dueDateInput, err := a.con.prompt(ctx, "Enter due date (yyyy-MM-dd, e.g., 2024-12-30): ")
	if err != nil {
		return err
	}
	dueDate, err := validation.ParseDate("due_date", dueDateInput)
	if err != nil {
		return err
	}

	city, err := a.con.prompt(ctx, "Enter city name for weather information "+
		"(if your city name is not listed, weather information may not show correctly): ")
	if err != nil {
		return err
	}

	task := model.NewTask(title, description, dueDate, city)

	task.WeatherInfo, err = a.weather.GetWeather(ctx, city)
	if err != nil {
		return &failure{message: "Failed to fetch weather information", err: err}
	}

	if err := a.tasks.CreateTask(ctx, task); err != nil {
		return err
	}
	a.log.Logf("[INFO] created task id=%d", task.ID)
	successColor.Fprintln(a.con.out, "Task added successfully.")
	return nil
}

func (a *App) completeTask(ctx context.Context) error {
	task, err := a.promptTask(ctx)
	if err != nil {
		return err
	}

	task.Completed = true
	if err := a.tasks.UpdateTask(ctx, task); err != nil {
		return err
	}
	a.log.Logf("[INFO] completed task id=%d", task.ID)
	successColor.Fprintln(a.con.out, "Task marked as completed.")
	return nil
}

func (a *App) removeTask(ctx context.Context) error {
	task, err := a.promptTask(ctx)
	if err != nil {
		return err
	}

	if err := a.tasks.RemoveTask(ctx, task.ID); err != nil {
		return err
	}
	a.log.Logf("[INFO] removed task id=%d", task.ID)
	successColor.Fprintln(a.con.out, "Task removed.")
	return nil
}

// editTask collects all new values before touching the task, so an invalid
// value leaves it unchanged. Blank input keeps the current value.
func (a *App) editTask(ctx context.Context) error {
	task, err := a.promptTask(ctx)
	if err != nil {
		return err
	}

	title, err := a.con.prompt(ctx, fmt.Sprintf(
		"Enter new title (leave blank to keep current, Maximum %d characters): ", model.TitleMaxLen))
	if err != nil {
		return err
	}
	if !isBlank(title) {
		if err := validation.CheckTitle(title); err != nil {
			return err
		}
	}

	description, err := a.con.prompt(ctx, fmt.Sprintf(
		"Enter new description (leave blank to keep current, Maximum %d characters): ", model.DescriptionMaxLen))
	if err != nil {
		return err
	}
	if !isBlank(description) {
		if err := validation.CheckDescription(description); err != nil {
			return err
		}
	}

	dueDateInput, err := a.con.prompt(ctx, "Enter new due date (leave blank to keep current, yyyy-MM-dd, e.g., 2024-12-30): ")
	if err != nil {
		return err
	}
	dueDate := task.DueDate
	if !isBlank(dueDateInput) {
		if dueDate, err = validation.ParseDate("due_date", dueDateInput); err != nil {
			return err
		}
	}

	if !isBlank(title) {
		task.Title = title
	}
	if !isBlank(description) {
		task.Description = description
	}
	task.DueDate = dueDate

	if err := a.tasks.UpdateTask(ctx, task); err != nil {
		return err
	}
	a.log.Logf("[INFO] updated task id=%d", task.ID)
	successColor.Fprintln(a.con.out, "Task updated.")
	return nil
}

func (a *App) filterByCompletion(ctx context.Context) error {
	input, err := a.con.prompt(ctx, "Enter completion status (yes/no): ")
	if err != nil {
		return err
	}

	var completed bool
	switch cases.Fold().String(strings.TrimSpace(input)) {
	case "yes":
		completed = true
	case "no":
		completed = false
	default:
		return &validation.Error{Field: "status", Reason: "Invalid status. Please enter 'yes' or 'no'."}
	}

	return a.showTasks(ctx, model.TaskFilter{Completed: &completed})
}

func (a *App) filterByDateRange(ctx context.Context) error {
	startInput, err := a.con.prompt(ctx, "Enter start date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}
	start, err := validation.ParseDate("start_date", startInput)
	if err != nil {
		return err
	}

	endInput, err := a.con.prompt(ctx, "Enter end date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}
	end, err := validation.ParseDate("end_date", endInput)
	if err != nil {
		return err
	}

	return a.showTasks(ctx, model.TaskFilter{DueFrom: start, DueTo: end})
}

func (a *App) showTasks(ctx context.Context, filter model.TaskFilter) error {
	tasks, err := a.tasks.FetchTasks(ctx, filter)
	if err != nil {
		return err
	}
	renderTasks(a.con.out, tasks)
	return nil
}

// promptTask asks for a task id and loads that task.
func (a *App) promptTask(ctx context.Context) (*model.Task, error) {
	input, err := a.con.prompt(ctx, "Enter task Id: ")
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, &validation.Error{Field: "id", Reason: "Invalid task id."}
	}

	task, err := a.tasks.FetchTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			return nil, &taskNotFoundError{id: id}
		}
		return nil, fmt.Errorf("could not fetch task id=%d: %w", id, err)
	}
	return task, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
