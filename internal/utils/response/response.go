// Package response writes operator-facing results to the terminal.
//
// Console implements both directory.Reporter and menu.Reporter so all
// wording and styling lives in one place. Every message is a single styled
// block surrounded by blank lines, as the menu prints between prompts.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gookit/color"

	"github.com/aanand-mishra/student-manager/internal/types"
)

const (
	ruleWidth       = 70
	notFoundMessage = "Student not found. Please enter a correct student ID."
	exitMessage     = "Exiting the program..."
)

var (
	styleRule     = color.New(color.OpBold)
	styleBanner   = color.New(color.FgCyan, color.BgLightMagenta, color.OpBold, color.OpItalic)
	styleAdded    = color.New(color.FgGreen, color.BgLightYellow, color.OpBold)
	styleEnrolled = color.New(color.FgGreen, color.BgLightBlue, color.OpBold)
	stylePaid     = color.New(color.FgGreen, color.BgLightGreen, color.OpBold)
	styleBalance  = color.New(color.FgBlue, color.BgDarkGray, color.OpBold)
	styleStatus   = color.New(color.FgYellow, color.OpBold)
	styleNotFound = color.New(color.FgRed, color.BgRed, color.OpBold)
	styleInvalid  = color.New(color.FgRed, color.OpBold)
	styleExit     = color.New(color.FgRed, color.BgLightRed, color.OpBold, color.OpItalic)
)

// Console renders results to out. When colored is false the text is
// written without any escape sequences.
type Console struct {
	out      io.Writer
	colored  bool
	title    string
	currency string
}

// NewConsole returns a Console. title is the system name shown in the
// welcome banner and currency prefixes every amount.
func NewConsole(out io.Writer, colored bool, title, currency string) *Console {
	return &Console{
		out:      out,
		colored:  colored,
		title:    title,
		currency: currency,
	}
}

func (c *Console) Banner() {
	rule := strings.Repeat("-", ruleWidth)
	c.line(styleRule, rule)
	c.line(styleBanner, fmt.Sprintf("\n\tWelcome to the %s\n\t", c.title))
	c.line(styleRule, rule)
}

func (c *Console) StudentAdded(s types.Student) {
	c.block(styleAdded, fmt.Sprintf("Student: %s added successfully. Student ID: %d", s.Name, s.ID))
}

func (c *Console) StudentEnrolled(s types.Student, course string) {
	c.block(styleEnrolled, fmt.Sprintf("Student: %s enrolled in %s successfully.", s.Name, course))
}

func (c *Console) Balance(s types.Student) {
	c.block(styleBalance, fmt.Sprintf("Balance for %s: %s", s.Name, c.money(s.Balance)))
}

func (c *Console) FeesPaid(s types.Student, amount int64) {
	c.block(stylePaid, fmt.Sprintf("%s Fees paid successfully for %s!", c.money(amount), s.Name))
}

func (c *Console) Status(s types.Student) {
	c.line(styleStatus, fmt.Sprintf("Student ID: %d", s.ID))
	c.line(styleStatus, "Name: "+s.Name)
	c.line(styleStatus, "Courses: "+s.CourseList())
	c.line(styleStatus, "Balance: "+c.money(s.Balance))
}

func (c *Console) NotFound(id int64) {
	c.block(styleNotFound, notFoundMessage)
}

// InvalidInput explains why an answer was rejected. Validator errors are
// turned into sentences by ValidationError; anything else is shown as is.
func (c *Console) InvalidInput(err error) {
	var validateErrs validator.ValidationErrors
	msg := err.Error()
	if errors.As(err, &validateErrs) {
		msg = ValidationError(validateErrs)
	} else if _, reason, ok := strings.Cut(msg, ": "); ok {
		msg = reason
	}
	c.block(styleInvalid, "Invalid input: "+msg)
}

func (c *Console) Failure(err error) {
	c.block(styleInvalid, "Something went wrong: "+err.Error())
}

func (c *Console) Exiting() {
	c.block(styleExit, exitMessage)
}

// ValidationError converts validator field errors into one readable
// sentence, e.g. "student ID is required, amount must be a number".
func ValidationError(errs validator.ValidationErrors) string {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("%s is required", e.Field()))
		case "numeric", "number":
			errMessages = append(errMessages,
				fmt.Sprintf("%s must be a number", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	return strings.Join(errMessages, ", ")
}

func (c *Console) money(amount int64) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%d", c.currency, -amount)
	}
	return fmt.Sprintf("%s%d", c.currency, amount)
}

// block writes msg padded by blank lines, styled as one unit.
func (c *Console) block(style color.Style, msg string) {
	c.line(style, "\n"+msg+"\n")
}

func (c *Console) line(style color.Style, msg string) {
	if c.colored {
		msg = style.Sprint(msg)
	}
	fmt.Fprintln(c.out, msg)
}
