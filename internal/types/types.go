// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: the
// directory, storage backends and menu handlers all import types without
// depending on each other.
package types

import (
	"slices"
	"strings"
)

// Student represents one student record held by the directory.
//
// ID and Name never change after creation. Courses and Balance are only
// mutated through Enroll and PayFees, which the directory calls after a
// successful lookup.
type Student struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
	Balance int64    `json:"balance"`
}

// NewStudent builds a record with no courses and the given opening balance.
// The name is taken as-is; an empty name is allowed.
func NewStudent(id int64, name string, openingBalance int64) Student {
	return Student{
		ID:      id,
		Name:    name,
		Courses: []string{},
		Balance: openingBalance,
	}
}

// Enroll appends course to the student's courses. Duplicates and empty
// course names are kept.
func (s *Student) Enroll(course string) {
	s.Courses = append(s.Courses, course)
}

// PayFees subtracts amount from the balance. There is no floor: the balance
// may go negative, and a negative amount raises it.
func (s *Student) PayFees(amount int64) {
	s.Balance -= amount
}

// CourseList joins the courses for display, e.g. "Math, Physics".
func (s Student) CourseList() string {
	return strings.Join(s.Courses, ", ")
}

// Clone returns a copy that shares no memory with s.
func (s Student) Clone() Student {
	c := s
	c.Courses = slices.Clone(s.Courses)
	if c.Courses == nil {
		c.Courses = []string{}
	}
	return c
}

// The request types below are the raw operator answers collected by the
// menu handlers. Numeric fields arrive as text and are checked with the
// go-playground/validator tags before being parsed.
//
// label:"..." is the name used in operator-facing validation messages.

// NewStudentRequest is the answer to the "Add student" prompts.
type NewStudentRequest struct {
	Name string `label:"name"`
}

// StudentIDRequest is the answer to prompts that only ask for an id.
type StudentIDRequest struct {
	StudentID string `label:"student ID" validate:"required,numeric"`
}

// EnrollRequest is the answer to the "Enroll a student in a course" prompts.
type EnrollRequest struct {
	StudentID string `label:"student ID" validate:"required,numeric"`
	Course    string `label:"course"`
}

// PaymentRequest is the answer to the "Pay student fees" prompts.
type PaymentRequest struct {
	StudentID string `label:"student ID" validate:"required,numeric"`
	Amount    string `label:"amount"     validate:"required,numeric"`
}
