package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/storage/storagetest"
	"github.com/aanand-mishra/student-manager/internal/types"
)

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStore: func() (storage.Storage, error) { return New(), nil },
	})
}

func TestUpdateDoesNotAliasCallerCourses(t *testing.T) {
	m := New()
	student := types.NewStudent(1000, "Alice", 1000)
	require.NoError(t, m.CreateStudent(student))

	student.Enroll("Math")
	require.NoError(t, m.UpdateStudent(student))
	student.Courses[0] = "Changed"

	found, err := m.GetStudentByID(1000)
	require.NoError(t, err)
	require.Equal(t, []string{"Math"}, found.Courses)
}
