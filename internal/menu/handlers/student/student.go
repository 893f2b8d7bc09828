// Package student contains the menu handlers for the student options.
//
// Each exported function is a factory: it receives its dependencies once
// when the menu is wired and returns the menu.Handler that runs every time
// the option is chosen.
//
//	routes := menu.Routes{AddStudent: student.New(dir, prompter), ...}
package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-manager/internal/menu"
	"github.com/aanand-mishra/student-manager/internal/prompt"
	"github.com/aanand-mishra/student-manager/internal/types"
)

const (
	labelName      = "Enter the student name:"
	labelStudentID = "Enter the student ID:"
	labelCourse    = "Enter the course name:"
	labelAmount    = "Enter the amount:"
)

// Directory is the subset of the student directory the handlers call.
type Directory interface {
	AddStudent(name string) (types.Student, error)
	EnrollStudent(id int64, course string) (types.Student, error)
	ViewBalance(id int64) (types.Student, error)
	PayFees(id int64, amount int64) (types.Student, error)
	ShowStatus(id int64) (types.Student, error)
}

var validate = newValidator()

// newValidator reports fields by their label tag, so messages read
// "student ID is required" rather than "StudentID is required".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// New handles "Add student".
func New(dir Directory, p prompt.Prompter) menu.Handler {
	return func(ctx context.Context) error {
		var req types.NewStudentRequest
		var err error
		if req.Name, err = p.Input(labelName); err != nil {
			return err
		}

		slog.InfoContext(ctx, "adding a student")
		_, err = dir.AddStudent(req.Name)
		return err
	}
}

// Enroll handles "Enroll a student in a course".
func Enroll(dir Directory, p prompt.Prompter) menu.Handler {
	return func(ctx context.Context) error {
		var req types.EnrollRequest
		var err error
		if req.StudentID, err = askNumber(p, labelStudentID); err != nil {
			return err
		}
		if req.Course, err = p.Input(labelCourse); err != nil {
			return err
		}
		if err := check(req); err != nil {
			return err
		}

		id, err := parseInt("student ID", req.StudentID)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "enrolling a student", slog.Int64("id", id))
		_, err = dir.EnrollStudent(id, req.Course)
		return err
	}
}

// ViewBalance handles "View a student's balance".
func ViewBalance(dir Directory, p prompt.Prompter) menu.Handler {
	return func(ctx context.Context) error {
		id, err := askStudentID(p)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "viewing a balance", slog.Int64("id", id))
		_, err = dir.ViewBalance(id)
		return err
	}
}

// PayFees handles "Pay student fees". The amount may be negative.
func PayFees(dir Directory, p prompt.Prompter) menu.Handler {
	return func(ctx context.Context) error {
		var req types.PaymentRequest
		var err error
		if req.StudentID, err = askNumber(p, labelStudentID); err != nil {
			return err
		}
		if req.Amount, err = askNumber(p, labelAmount); err != nil {
			return err
		}
		if err := check(req); err != nil {
			return err
		}

		id, err := parseInt("student ID", req.StudentID)
		if err != nil {
			return err
		}
		amount, err := parseInt("amount", req.Amount)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "paying fees", slog.Int64("id", id), slog.Int64("amount", amount))
		_, err = dir.PayFees(id, amount)
		return err
	}
}

// Status handles "Show student status".
func Status(dir Directory, p prompt.Prompter) menu.Handler {
	return func(ctx context.Context) error {
		id, err := askStudentID(p)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "showing a status", slog.Int64("id", id))
		_, err = dir.ShowStatus(id)
		return err
	}
}

func askStudentID(p prompt.Prompter) (int64, error) {
	var req types.StudentIDRequest
	var err error
	if req.StudentID, err = askNumber(p, labelStudentID); err != nil {
		return 0, err
	}
	if err := check(req); err != nil {
		return 0, err
	}
	return parseInt("student ID", req.StudentID)
}

// check runs the validate tags on req. Failures wrap both
// menu.ErrInvalidInput and the validator errors.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		return fmt.Errorf("%w: %w", menu.ErrInvalidInput, validateErrs)
	}
	return fmt.Errorf("%w: %v", menu.ErrInvalidInput, err)
}

// askNumber asks for a numeric answer. Surrounding spaces are dropped so
// " 1000 " is accepted.
func askNumber(p prompt.Prompter, label string) (string, error) {
	answer, err := p.Input(label)
	return strings.TrimSpace(answer), err
}

// parseInt accepts only base-10 whole numbers that fit in an int64.
// "12abc", "1.5" and "" are all rejected rather than coerced.
func parseInt(field, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", menu.ErrInvalidInput, field)
	}
	return n, nil
}
