package validation

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/agalitsyn/todo-weather/internal/model"
)

// Error is a rejected piece of operator input. It is reported to the operator
// but never written to the error log.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate parses input as a real calendar date in strict YYYY-MM-DD form.
// The date is returned at midnight UTC; on failure it is the zero time.
func IsValidDate(input string) (time.Time, bool) {
	if !datePattern.MatchString(input) {
		return time.Time{}, false
	}

	// time.Parse rejects out of range months and days, e.g. 2024-02-30.
	date, err := time.Parse(model.DateLayout, input)
	if err != nil {
		return time.Time{}, false
	}
	if date.Year() < 1 || date.Year() > 9999 {
		return time.Time{}, false
	}
	return date, true
}

// ParseDate is IsValidDate returning a validation error for the given field.
func ParseDate(field, input string) (time.Time, error) {
	date, ok := IsValidDate(input)
	if !ok {
		return time.Time{}, &Error{
			Field:  field,
			Reason: "Invalid date. Please enter a valid date in yyyy-MM-dd format.",
		}
	}
	return date, nil
}

func CheckTitle(title string) error {
	return checkLength("title", "Title", title, model.TitleMaxLen)
}

func CheckDescription(description string) error {
	return checkLength("description", "Description", description, model.DescriptionMaxLen)
}

func checkLength(field, name, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return &Error{
			Field:  field,
			Reason: fmt.Sprintf("%s cannot be more than %d characters.", name, limit),
		}
	}
	return nil
}
