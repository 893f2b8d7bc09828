// Package storagetest holds the behaviour every storage.Storage backend must
// share, as a testify suite that backend packages run against themselves.
package storagetest

import (
	"github.com/stretchr/testify/suite"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Suite runs the storage contract against the store returned by NewStore.
// NewStore is called before every test so each test starts empty.
type Suite struct {
	suite.Suite
	NewStore func() (storage.Storage, error)
	store    storage.Storage
}

func (s *Suite) SetupTest() {
	store, err := s.NewStore()
	s.Require().NoError(err)
	s.store = store
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *Suite) TestCreateAndGet() {
	s.Run("round-trips a new record", func() {
		student := types.NewStudent(1000, "Alice", 1000)
		s.Require().NoError(s.store.CreateStudent(student))

		found, err := s.store.GetStudentByID(1000)
		s.Require().NoError(err)
		s.Equal(student, found)
	})

	s.Run("keeps an empty name", func() {
		s.Require().NoError(s.store.CreateStudent(types.NewStudent(1001, "", 1000)))

		found, err := s.store.GetStudentByID(1001)
		s.Require().NoError(err)
		s.Equal("", found.Name)
	})

	s.Run("rejects a duplicate id", func() {
		err := s.store.CreateStudent(types.NewStudent(1000, "Bob", 1000))
		s.Error(err)
	})
}

func (s *Suite) TestGetUnknownID() {
	_, err := s.store.GetStudentByID(9999)
	s.Require().ErrorIs(err, storage.ErrStudentNotFound)

	s.Require().NoError(s.store.CreateStudent(types.NewStudent(1000, "Alice", 1000)))
	_, err = s.store.GetStudentByID(1001)
	s.Require().ErrorIs(err, storage.ErrStudentNotFound)
}

func (s *Suite) TestUpdate() {
	student := types.NewStudent(1000, "Alice", 1000)
	s.Require().NoError(s.store.CreateStudent(student))

	student.Enroll("Math")
	student.Enroll("Art")
	student.Enroll("Math")
	student.PayFees(1300)
	s.Require().NoError(s.store.UpdateStudent(student))

	found, err := s.store.GetStudentByID(1000)
	s.Require().NoError(err)
	s.Equal([]string{"Math", "Art", "Math"}, found.Courses)
	s.Equal(int64(-300), found.Balance)
	s.Equal("Alice", found.Name)
}

func (s *Suite) TestUpdateUnknownID() {
	err := s.store.UpdateStudent(types.NewStudent(4242, "Ghost", 1000))
	s.Require().ErrorIs(err, storage.ErrStudentNotFound)
}

func (s *Suite) TestReturnedRecordsAreCopies() {
	s.Require().NoError(s.store.CreateStudent(types.NewStudent(1000, "Alice", 1000)))

	found, err := s.store.GetStudentByID(1000)
	s.Require().NoError(err)
	found.Enroll("Math")
	found.PayFees(500)

	again, err := s.store.GetStudentByID(1000)
	s.Require().NoError(err)
	s.Empty(again.Courses)
	s.Equal(int64(1000), again.Balance)
}

func (s *Suite) TestGetStudentsInInsertionOrder() {
	all, err := s.store.GetStudents()
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)

	for i, name := range []string{"Carol", "Alice", "Bob"} {
		s.Require().NoError(s.store.CreateStudent(types.NewStudent(int64(1000+i), name, 1000)))
	}
	bob, err := s.store.GetStudentByID(1002)
	s.Require().NoError(err)
	bob.Enroll("History")
	s.Require().NoError(s.store.UpdateStudent(bob))

	all, err = s.store.GetStudents()
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("Carol", all[0].Name)
	s.Equal("Alice", all[1].Name)
	s.Equal("Bob", all[2].Name)
	s.Equal([]string{"History"}, all[2].Courses)
}
