// Package memory provides the default storage.Storage backend: an ordered
// slice of records plus an index from id to slice position.
package memory

import (
	"fmt"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Memory keeps records in creation order. It is not safe for concurrent use;
// the menu drives it from a single goroutine.
type Memory struct {
	students []types.Student
	index    map[int64]int
}

// New returns an empty store.
func New() *Memory {
	return &Memory{
		students: make([]types.Student, 0),
		index:    make(map[int64]int),
	}
}

func (m *Memory) CreateStudent(student types.Student) error {
	if _, ok := m.index[student.ID]; ok {
		return fmt.Errorf("CreateStudent: duplicate id %d", student.ID)
	}
	m.index[student.ID] = len(m.students)
	m.students = append(m.students, student.Clone())
	return nil
}

func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	pos, ok := m.index[id]
	if !ok {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrStudentNotFound)
	}
	return m.students[pos].Clone(), nil
}

func (m *Memory) GetStudents() ([]types.Student, error) {
	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s.Clone())
	}
	return students, nil
}

func (m *Memory) UpdateStudent(student types.Student) error {
	pos, ok := m.index[student.ID]
	if !ok {
		return fmt.Errorf("UpdateStudent: no student found with id %d: %w", student.ID, storage.ErrStudentNotFound)
	}

	// Name is immutable; only the mutable fields are copied over.
	stored := &m.students[pos]
	stored.Courses = student.Clone().Courses
	stored.Balance = student.Balance
	return nil
}

func (m *Memory) Close() error { return nil }
