package student

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-manager/internal/directory"
	"github.com/aanand-mishra/student-manager/internal/menu"
	"github.com/aanand-mishra/student-manager/internal/prompt"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// answers is a Prompter that replays fixed answers and records the labels
// it was asked.
type answers struct {
	queue  []string
	labels []string
}

func (a *answers) Select(label string, items []string) (int, error) {
	panic("handlers never show the menu")
}

func (a *answers) Input(label string) (string, error) {
	a.labels = append(a.labels, label)
	if len(a.queue) == 0 {
		return "", prompt.ErrClosed
	}
	next := a.queue[0]
	a.queue = a.queue[1:]
	return next, nil
}

// call records one directory call.
type call struct {
	op     string
	id     int64
	arg    string
	amount int64
}

type fakeDirectory struct {
	calls []call
	err   error
}

func (d *fakeDirectory) AddStudent(name string) (types.Student, error) {
	d.calls = append(d.calls, call{op: "add", arg: name})
	return types.Student{}, d.err
}

func (d *fakeDirectory) EnrollStudent(id int64, course string) (types.Student, error) {
	d.calls = append(d.calls, call{op: "enroll", id: id, arg: course})
	return types.Student{}, d.err
}

func (d *fakeDirectory) ViewBalance(id int64) (types.Student, error) {
	d.calls = append(d.calls, call{op: "balance", id: id})
	return types.Student{}, d.err
}

func (d *fakeDirectory) PayFees(id int64, amount int64) (types.Student, error) {
	d.calls = append(d.calls, call{op: "pay", id: id, amount: amount})
	return types.Student{}, d.err
}

func (d *fakeDirectory) ShowStatus(id int64) (types.Student, error) {
	d.calls = append(d.calls, call{op: "status", id: id})
	return types.Student{}, d.err
}

type factory func(Directory, prompt.Prompter) menu.Handler

func TestHandlers_ValidInput(t *testing.T) {
	tests := []struct {
		name    string
		handler factory
		input   []string
		labels  []string
		want    call
	}{
		{
			name:    "add student",
			handler: New,
			input:   []string{"Alice"},
			labels:  []string{labelName},
			want:    call{op: "add", arg: "Alice"},
		},
		{
			name:    "add student with empty name",
			handler: New,
			input:   []string{""},
			labels:  []string{labelName},
			want:    call{op: "add", arg: ""},
		},
		{
			name:    "enroll",
			handler: Enroll,
			input:   []string{" 1000 ", "Math"},
			labels:  []string{labelStudentID, labelCourse},
			want:    call{op: "enroll", id: 1000, arg: "Math"},
		},
		{
			name:    "enroll with empty course",
			handler: Enroll,
			input:   []string{"1000", ""},
			labels:  []string{labelStudentID, labelCourse},
			want:    call{op: "enroll", id: 1000, arg: ""},
		},
		{
			name:    "view balance",
			handler: ViewBalance,
			input:   []string{"1001"},
			labels:  []string{labelStudentID},
			want:    call{op: "balance", id: 1001},
		},
		{
			name:    "pay fees",
			handler: PayFees,
			input:   []string{"1000", "300"},
			labels:  []string{labelStudentID, labelAmount},
			want:    call{op: "pay", id: 1000, amount: 300},
		},
		{
			name:    "pay negative fees",
			handler: PayFees,
			input:   []string{"1000", "-250"},
			labels:  []string{labelStudentID, labelAmount},
			want:    call{op: "pay", id: 1000, amount: -250},
		},
		{
			name:    "show status",
			handler: Status,
			input:   []string{"1000"},
			labels:  []string{labelStudentID},
			want:    call{op: "status", id: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{}
			p := &answers{queue: tt.input}

			err := tt.handler(dir, p)(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.labels, p.labels)
			assert.Equal(t, []call{tt.want}, dir.calls)
		})
	}
}

func TestHandlers_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		handler    factory
		input      []string
		validation bool
	}{
		{"empty id", ViewBalance, []string{""}, true},
		{"blank id", Status, []string{"   "}, true},
		{"letters", Status, []string{"abc"}, true},
		{"trailing letters", Enroll, []string{"12abc", "Math"}, true},
		{"fraction id", ViewBalance, []string{"1000.5"}, false},
		{"fraction amount", PayFees, []string{"1000", "1.5"}, false},
		{"empty amount", PayFees, []string{"1000", ""}, true},
		{"amount overflows", PayFees, []string{"1000", "99999999999999999999"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{}

			err := tt.handler(dir, &answers{queue: tt.input})(context.Background())
			require.ErrorIs(t, err, menu.ErrInvalidInput)
			assert.Empty(t, dir.calls, "directory must not be called with bad input")

			var validateErrs validator.ValidationErrors
			assert.Equal(t, tt.validation, errors.As(err, &validateErrs))
		})
	}
}

func TestValidationErrorsUseLabels(t *testing.T) {
	err := PayFees(&fakeDirectory{}, &answers{queue: []string{"", "x"}})(context.Background())

	var validateErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validateErrs))
	require.Len(t, validateErrs, 2)
	assert.Equal(t, "student ID", validateErrs[0].Field())
	assert.Equal(t, "required", validateErrs[0].ActualTag())
	assert.Equal(t, "amount", validateErrs[1].Field())
	assert.Equal(t, "numeric", validateErrs[1].ActualTag())
}

func TestHandlers_PassThroughDirectoryErrors(t *testing.T) {
	dir := &fakeDirectory{err: directory.ErrNotFound}

	err := ViewBalance(dir, &answers{queue: []string{"9999"}})(context.Background())
	require.ErrorIs(t, err, directory.ErrNotFound)
	assert.Equal(t, []call{{op: "balance", id: 9999}}, dir.calls)
}

func TestHandlers_InputClosed(t *testing.T) {
	dir := &fakeDirectory{}

	err := PayFees(dir, &answers{queue: []string{"1000"}})(context.Background())
	require.ErrorIs(t, err, prompt.ErrClosed)
	assert.Empty(t, dir.calls)
}
