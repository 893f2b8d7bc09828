// Package menu runs the operator loop: show the options, dispatch the
// choice to its handler, report what went wrong, repeat until Exit.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-manager/internal/directory"
	"github.com/aanand-mishra/student-manager/internal/prompt"
)

// Menu options, in display order.
const (
	OptionAddStudent    = "Add student"
	OptionEnrollStudent = "Enroll a student in a course"
	OptionViewBalance   = "View a student's balance"
	OptionPayFees       = "Pay student fees"
	OptionShowStatus    = "Show student status"
	OptionExit          = "Exit"
)

// Options lists every choice exactly as it is shown.
var Options = []string{
	OptionAddStudent,
	OptionEnrollStudent,
	OptionViewBalance,
	OptionPayFees,
	OptionShowStatus,
	OptionExit,
}

const selectLabel = "Select an option:"

// ErrInvalidInput marks an operator answer that could not be used, such as
// a student ID that is not a whole number. It is reported and the loop
// carries on.
var ErrInvalidInput = errors.New("invalid input")

// Handler runs one menu option: it asks its own questions and calls the
// directory.
type Handler func(ctx context.Context) error

// Routes maps each option (except Exit) to its handler.
type Routes struct {
	AddStudent    Handler
	EnrollStudent Handler
	ViewBalance   Handler
	PayFees       Handler
	ShowStatus    Handler
}

// Reporter is the part of the console the loop itself writes to.
type Reporter interface {
	Banner()
	InvalidInput(err error)
	Failure(err error)
	Exiting()
}

type Menu struct {
	prompter prompt.Prompter
	report   Reporter
	handlers map[string]Handler
}

func New(prompter prompt.Prompter, report Reporter, routes Routes) *Menu {
	return &Menu{
		prompter: prompter,
		report:   report,
		handlers: map[string]Handler{
			OptionAddStudent:    routes.AddStudent,
			OptionEnrollStudent: routes.EnrollStudent,
			OptionViewBalance:   routes.ViewBalance,
			OptionPayFees:       routes.PayFees,
			OptionShowStatus:    routes.ShowStatus,
		},
	}
}

// Run shows the banner and loops until the operator picks Exit or their
// input ends; both return nil. Handler failures are reported and do not stop
// the loop. Only a prompt that breaks for another reason, or a cancelled
// ctx, ends Run with an error.
func (m *Menu) Run(ctx context.Context) error {
	m.report.Banner()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := m.prompter.Select(selectLabel, Options)
		if errors.Is(err, prompt.ErrClosed) {
			slog.Debug("input closed at menu")
			m.report.Exiting()
			return nil
		}
		if err != nil {
			return fmt.Errorf("menu: select: %w", err)
		}

		option := Options[idx]
		slog.Debug("option selected", slog.String("option", option))

		if option == OptionExit {
			m.report.Exiting()
			return nil
		}

		err = m.handlers[option](ctx)
		switch {
		case err == nil:
		case errors.Is(err, prompt.ErrClosed):
			slog.Debug("input closed during option", slog.String("option", option))
			m.report.Exiting()
			return nil
		case errors.Is(err, ErrInvalidInput):
			slog.Debug("invalid input", slog.String("option", option), slog.String("error", err.Error()))
			m.report.InvalidInput(err)
		case errors.Is(err, directory.ErrNotFound):
			// Already reported by the directory.
			slog.Debug("student not found", slog.String("option", option))
		default:
			slog.Error("option failed",
				slog.String("option", option),
				slog.String("error", err.Error()))
			m.report.Failure(err)
		}
	}
}
