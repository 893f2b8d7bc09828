// Package directory owns the collection of student records: it assigns
// ids, looks records up by id and applies the enrollment and fee
// operations, reporting every outcome through a Reporter.
package directory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrNotFound is returned by Lookup and every id-keyed operation when no
// record has the requested id.
var ErrNotFound = storage.ErrStudentNotFound

// Reporter receives the outcome of each operation. Implementations decide
// how (and whether) to present it; the directory never writes to a terminal.
type Reporter interface {
	StudentAdded(s types.Student)
	StudentEnrolled(s types.Student, course string)
	Balance(s types.Student)
	FeesPaid(s types.Student, amount int64)
	Status(s types.Student)
	NotFound(id int64)
}

// Settings controls id assignment and the balance of new records.
type Settings struct {
	FirstID        int64
	OpeningBalance int64
}

// DefaultSettings starts ids at 1000 with an opening balance of 1000.
func DefaultSettings() Settings {
	return Settings{FirstID: 1000, OpeningBalance: 1000}
}

// Directory is not safe for concurrent use.
type Directory struct {
	store          storage.Storage
	report         Reporter
	nextID         int64
	openingBalance int64
}

// New returns a directory backed by store. Each directory has its own id
// counter, so two directories never influence each other's ids.
func New(store storage.Storage, report Reporter, settings Settings) *Directory {
	return &Directory{
		store:          store,
		report:         report,
		nextID:         settings.FirstID,
		openingBalance: settings.OpeningBalance,
	}
}

// Lookup returns the record with the given id. It does not report anything;
// a miss is an error wrapping ErrNotFound whether or not any record exists.
func (d *Directory) Lookup(id int64) (types.Student, error) {
	return d.store.GetStudentByID(id)
}

// AddStudent creates a record for name under the next id and reports it.
// The counter only advances once the record is stored.
func (d *Directory) AddStudent(name string) (types.Student, error) {
	student := types.NewStudent(d.nextID, name, d.openingBalance)
	if err := d.store.CreateStudent(student); err != nil {
		return types.Student{}, fmt.Errorf("AddStudent: %w", err)
	}
	d.nextID++

	slog.Info("student added", slog.Int64("id", student.ID))
	d.report.StudentAdded(student)
	return student, nil
}

// EnrollStudent appends course to the student's courses.
func (d *Directory) EnrollStudent(id int64, course string) (types.Student, error) {
	student, err := d.find(id)
	if err != nil {
		return types.Student{}, err
	}

	student.Enroll(course)
	if err := d.store.UpdateStudent(student); err != nil {
		return types.Student{}, fmt.Errorf("EnrollStudent: %w", err)
	}

	slog.Info("student enrolled",
		slog.Int64("id", id),
		slog.Int("courses", len(student.Courses)))
	d.report.StudentEnrolled(student, course)
	return student, nil
}

// ViewBalance reports the student's current balance.
func (d *Directory) ViewBalance(id int64) (types.Student, error) {
	student, err := d.find(id)
	if err != nil {
		return types.Student{}, err
	}

	d.report.Balance(student)
	return student, nil
}

// PayFees subtracts amount from the balance, then reports the payment
// followed by the updated balance.
func (d *Directory) PayFees(id int64, amount int64) (types.Student, error) {
	student, err := d.find(id)
	if err != nil {
		return types.Student{}, err
	}

	student.PayFees(amount)
	if err := d.store.UpdateStudent(student); err != nil {
		return types.Student{}, fmt.Errorf("PayFees: %w", err)
	}

	slog.Info("fees paid",
		slog.Int64("id", id),
		slog.Int64("amount", amount),
		slog.Int64("balance", student.Balance))
	d.report.FeesPaid(student, amount)
	d.report.Balance(student)
	return student, nil
}

// ShowStatus reports the full record.
func (d *Directory) ShowStatus(id int64) (types.Student, error) {
	student, err := d.find(id)
	if err != nil {
		return types.Student{}, err
	}

	d.report.Status(student)
	return student, nil
}

// Students returns every record in creation order.
func (d *Directory) Students() ([]types.Student, error) {
	return d.store.GetStudents()
}

// find is Lookup plus the not-found report shared by every id-keyed
// operation.
func (d *Directory) find(id int64) (types.Student, error) {
	student, err := d.Lookup(id)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("student not found", slog.Int64("id", id))
		d.report.NotFound(id)
		return types.Student{}, err
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("lookup %d: %w", id, err)
	}
	return student, nil
}
