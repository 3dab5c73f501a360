package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agalitsyn/todo-weather/internal/model"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

var taskColumns = []string{"Id", "Title", "Description", "Due Date", "Completed", "Weather Info"}

// renderTasks writes tasks as a table. No tasks still renders the header.
func renderTasks(w io.Writer, tasks []model.Task) {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			fmt.Sprint(task.ID),
			task.Title,
			task.Description,
			task.DueDate.Format(model.DateLayout),
			yesNo(task.Completed),
			task.WeatherInfo,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			// row 0 is the header, data rows start at 1
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(taskColumns...).
		Rows(rows...)

	fmt.Fprintln(w, t.String())
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
