package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agalitsyn/todo-weather/internal/model"
)

type TaskStorage struct {
	db *sql.DB
}

func NewTaskStorage(db *sql.DB) *TaskStorage {
	return &TaskStorage{db: db}
}

const taskColumns = `id, title, description, due_date, is_completed, weather_info, city`

func (s *TaskStorage) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (title, description, due_date, is_completed, weather_info, city)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate.Format(model.DateLayout),
		task.Completed,
		nullString(task.WeatherInfo),
		nullString(task.City),
	)
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("could not get last insert id: %w", err)
	}

	task.ID = int(id)
	return nil
}

func (s *TaskStorage) UpdateTask(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, due_date = ?, is_completed = ?, weather_info = ?, city = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate.Format(model.DateLayout),
		task.Completed,
		nullString(task.WeatherInfo),
		nullString(task.City),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	return expectAffected(result, "update")
}

func (s *TaskStorage) RemoveTask(ctx context.Context, id int) error {
	query := `DELETE FROM tasks WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}
	return expectAffected(result, "remove")
}

// FetchTasks returns the tasks matching filter ordered by due date, earliest
// first.
func (s *TaskStorage) FetchTasks(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}

	if filter.Completed != nil {
		query += " AND is_completed = ?"
		args = append(args, *filter.Completed)
	}

	// due_date is stored as YYYY-MM-DD so text comparison orders by date
	if !filter.DueFrom.IsZero() {
		query += " AND due_date >= ?"
		args = append(args, filter.DueFrom.Format(model.DateLayout))
	}

	if !filter.DueTo.IsZero() {
		query += " AND due_date <= ?"
		args = append(args, filter.DueTo.Format(model.DateLayout))
	}

	query += " ORDER BY due_date ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not filter tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStorage) FetchTaskByID(ctx context.Context, id int) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*model.Task, error) {
	var task model.Task
	var dueDate string
	var weatherInfo, city sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&dueDate,
		&task.Completed,
		&weatherInfo,
		&city,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("could not scan task: %w", err)
	}

	task.DueDate, err = time.Parse(model.DateLayout, dueDate)
	if err != nil {
		return nil, fmt.Errorf("could not parse due date of task id=%d: %w", task.ID, err)
	}
	task.WeatherInfo = weatherInfo.String
	task.City = city.String

	return &task, nil
}

func expectAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows on %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("could not %s task: %w", op, model.ErrTaskNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
