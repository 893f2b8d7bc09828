// Package sqlite provides a storage.Storage backend on top of an in-memory
// SQLite database, using Go's standard database/sql package.
//
// The database lives in process memory only (":memory:") and disappears
// when the store is closed or the process exits. Nothing is written to disk.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the in-memory SQLite implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens a private in-memory database and creates the schema.
//
// Every connection to ":memory:" gets its own empty database, so the pool
// is pinned to a single connection that stays open for the store's lifetime.
func New() (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Schema:
	//   students.seq        insertion order
	//   student_courses.seq enrollment order within a student
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq     INTEGER PRIMARY KEY AUTOINCREMENT,
			id      INTEGER NOT NULL UNIQUE,
			name    TEXT    NOT NULL,
			balance INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS student_courses (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL REFERENCES students (id),
			course     TEXT    NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) CreateStudent(student types.Student) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("CreateStudent: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO students (id, name, balance) VALUES (?, ?, ?)",
		student.ID, student.Name, student.Balance,
	)
	if err != nil {
		return fmt.Errorf("CreateStudent: exec: %w", err)
	}

	if err := insertCourses(tx, student.ID, student.Courses); err != nil {
		return fmt.Errorf("CreateStudent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("CreateStudent: commit: %w", err)
	}
	return nil
}

func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	var student types.Student

	err := s.Db.QueryRow(
		"SELECT id, name, balance FROM students WHERE id = ? LIMIT 1", id,
	).Scan(&student.ID, &student.Name, &student.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrStudentNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	student.Courses, err = s.courses(id)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}
	return student, nil
}

func (s *SQLite) GetStudents() ([]types.Student, error) {
	rows, err := s.Db.Query("SELECT id, name, balance FROM students ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}
	// The pool has a single connection; release it before the course queries.
	rows.Close()

	for i := range students {
		students[i].Courses, err = s.courses(students[i].ID)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: %w", err)
		}
	}
	return students, nil
}

func (s *SQLite) UpdateStudent(student types.Student) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("UpdateStudent: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE students SET balance = ? WHERE id = ?", student.Balance, student.ID)
	if err != nil {
		return fmt.Errorf("UpdateStudent: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStudent: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateStudent: no student found with id %d: %w", student.ID, storage.ErrStudentNotFound)
	}

	if _, err := tx.Exec("DELETE FROM student_courses WHERE student_id = ?", student.ID); err != nil {
		return fmt.Errorf("UpdateStudent: clear courses: %w", err)
	}
	if err := insertCourses(tx, student.ID, student.Courses); err != nil {
		return fmt.Errorf("UpdateStudent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("UpdateStudent: commit: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

func (s *SQLite) courses(id int64) ([]string, error) {
	rows, err := s.Db.Query(
		"SELECT course FROM student_courses WHERE student_id = ? ORDER BY seq", id,
	)
	if err != nil {
		return nil, fmt.Errorf("courses: query: %w", err)
	}
	defer rows.Close()

	courses := make([]string, 0)
	for rows.Next() {
		var course string
		if err := rows.Scan(&course); err != nil {
			return nil, fmt.Errorf("courses: scan row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("courses: rows iteration: %w", err)
	}
	return courses, nil
}

func insertCourses(tx *sql.Tx, id int64, courses []string) error {
	if len(courses) == 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT INTO student_courses (student_id, course) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("insert courses: prepare: %w", err)
	}
	defer stmt.Close()

	for _, course := range courses {
		if _, err := stmt.Exec(id, course); err != nil {
			return fmt.Errorf("insert courses: exec: %w", err)
		}
	}
	return nil
}
