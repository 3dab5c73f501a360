package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/todo-weather/internal/model"
	"github.com/agalitsyn/todo-weather/internal/validation"
	"github.com/agalitsyn/todo-weather/version"
)

type WeatherProvider interface {
	GetWeather(ctx context.Context, city string) (string, error)
}

type ErrorLogger interface {
	LogError(message string, cause error)
}

type App struct {
	tasks   model.TaskRepository
	weather WeatherProvider
	errLog  ErrorLogger
	log     lgr.L

	con *console
}

func New(
	tasks model.TaskRepository,
	weather WeatherProvider,
	errLog ErrorLogger,
	in io.Reader,
	out io.Writer,
	log lgr.L,
) *App {
	return &App{
		tasks:   tasks,
		weather: weather,
		errLog:  errLog,
		log:     log,
		con:     newConsole(in, out),
	}
}

var (
	titleColor   = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

const menuExit = "8"

// Run shows the menu and executes the chosen use case until the operator
// exits or input ends. It returns ctx.Err() when interrupted. The App can not
// read input after Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.con.close()

	for {
		a.showMenu()

		choice, err := a.con.readLine(ctx)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				a.log.Logf("[DEBUG] input closed, leaving menu loop")
				return nil
			}
			return err
		}
		choice = strings.TrimSpace(choice)
		a.log.Logf("[DEBUG] menu choice %q", choice)

		if choice == menuExit {
			fmt.Fprintln(a.con.out, "Exiting the application.")
			return nil
		}

		if err := a.handleChoice(ctx, choice); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}
	}
}

// handleChoice returns an error only when input can no longer be read.
func (a *App) handleChoice(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return a.AddTask(ctx)
	case "2":
		return a.ViewTasks(ctx)
	case "3":
		return a.CompleteTask(ctx)
	case "4":
		return a.RemoveTask(ctx)
	case "5":
		return a.EditTask(ctx)
	case "6":
		return a.FilterByCompletion(ctx)
	case "7":
		return a.FilterByDateRange(ctx)
	default:
		errorColor.Fprintln(a.con.out, "Invalid choice. Please try again.")
		return nil
	}
}

func (a *App) showMenu() {
	out := a.con.out
	fmt.Fprintln(out)
	titleColor.Fprintf(out, "ToDo List Application (%s)\n", version.String())
	fmt.Fprintln(out, "1. Add new task")
	fmt.Fprintln(out, "2. View all tasks")
	fmt.Fprintln(out, "3. Mark task as completed")
	fmt.Fprintln(out, "4. Remove task")
	fmt.Fprintln(out, "5. Edit task")
	fmt.Fprintln(out, "6. Filter tasks by completion status")
	fmt.Fprintln(out, "7. Filter tasks by date range")
	fmt.Fprintln(out, "8. Exit")
	fmt.Fprint(out, "Enter your choice: ")
}

// failure overrides the use case message reported for err.
type failure struct {
	message string
	err     error
}

func (f *failure) Error() string {
	return fmt.Sprintf("%s: %v", f.message, f.err)
}

func (f *failure) Unwrap() error {
	return f.err
}

type taskNotFoundError struct {
	id int
}

func (e *taskNotFoundError) Error() string {
	return fmt.Sprintf("Task with id %d not found.", e.id)
}

// runUseCase applies the error policy shared by every use case. Operator
// mistakes are printed, anything else is printed and logged. Only input
// errors (closed input, cancellation) are returned.
func (a *App) runUseCase(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}

	if isInputError(ctx, err) {
		return err
	}

	var verr *validation.Error
	var nfErr *taskNotFoundError
	if errors.As(err, &verr) || errors.As(err, &nfErr) {
		noticeColor.Fprintln(a.con.out, err.Error())
		return nil
	}

	var f *failure
	if errors.As(err, &f) {
		message, err = f.message, f.err
	}
	a.handleError(message, err)
	return nil
}

func (a *App) handleError(message string, err error) {
	errorColor.Fprintf(a.con.out, "%s: %v\n", message, err)
	if errors.Unwrap(err) != nil {
		errorColor.Fprintf(a.con.out, "Inner error: %v\n", rootCause(err))
	}
	a.log.Logf("[WARN] %s: %v", message, err)
	a.errLog.LogError(message, err)
}

func isInputError(ctx context.Context, err error) bool {
	if errors.Is(err, errInputClosed) {
		return true
	}
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
