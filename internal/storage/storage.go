// Package storage defines the Storage interface: the contract every
// backend holding student records must satisfy.
//
// The directory depends only on this interface, so the plain in-memory
// backend and the in-memory SQLite backend are interchangeable, and tests
// can run the same checks against both.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrStudentNotFound is returned (possibly wrapped) when no record has the
// requested id.
var ErrStudentNotFound = errors.New("student not found")

// Storage is the record-keeping contract.
//
// Backends keep records in insertion order and never hand out memory that
// the caller could mutate behind their back: values in, copies out.
type Storage interface {
	// CreateStudent stores a new record. The id is assigned by the caller.
	CreateStudent(student types.Student) error

	// GetStudentByID returns the record with the given id, or an error
	// wrapping ErrStudentNotFound.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every record in insertion order.
	// Returns an empty slice (not nil) when there are none.
	GetStudents() ([]types.Student, error)

	// UpdateStudent replaces the courses and balance of an existing record.
	// Returns an error wrapping ErrStudentNotFound if the id is unknown.
	UpdateStudent(student types.Student) error

	// Close releases any resources held by the backend.
	Close() error
}
