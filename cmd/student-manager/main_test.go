package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// session runs the program with stdin fed from lines and returns stdout.
func session(t *testing.T, args []string, lines ...string) string {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")

	stdin := strings.NewReader(strings.Join(lines, "\n") + "\n")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := run(context.Background(), args, stdin, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())
	return stdout.String()
}

func TestRun_EndToEnd(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			t.Setenv("STUDENTS_STORAGE_DRIVER", driver)

			out := session(t, nil,
				"1", "Alice",
				"2", "1000", "Math",
				"4", "1000", "300",
				"5", "1000",
				"3", "9999",
				"6",
			)

			assert.Contains(t, out, "Welcome to the Student Management System")
			assert.Contains(t, out, "Student: Alice added successfully. Student ID: 1000")
			assert.Contains(t, out, "Student: Alice enrolled in Math successfully.")
			assert.Contains(t, out, "$300 Fees paid successfully for Alice!")
			assert.Contains(t, out, "Balance for Alice: $700")
			assert.Contains(t, out, "Student ID: 1000\nName: Alice\nCourses: Math\nBalance: $700\n")
			assert.Contains(t, out, "Student not found. Please enter a correct student ID.")
			assert.True(t, strings.HasSuffix(out, "Exiting the program...\n\n"))
			assert.NotContains(t, out, "\x1b[", "output to a buffer is never colored")
		})
	}
}

func TestRun_InvalidInputIsNotNotFound(t *testing.T) {
	out := session(t, []string{"--plain"},
		"View a student's balance", "abc",
		"Pay student fees", "1000", "1.5",
		"Exit",
	)

	assert.Contains(t, out, "Invalid input: student ID must be a number")
	assert.Contains(t, out, "Invalid input: amount must be a whole number")
	assert.NotContains(t, out, "Student not found")
}

func TestRun_EndOfInputExitsCleanly(t *testing.T) {
	out := session(t, nil, "1", "Bob")

	assert.Contains(t, out, "Student ID: 1000")
	assert.True(t, strings.HasSuffix(out, "Exiting the program...\n\n"))
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
directory:
  first_id: 1
  opening_balance: 50
terminal:
  title: Evening Classes
  currency: "£"
`), 0o600))

	out := session(t, []string{"--config", path}, "1", "Alice", "3", "1", "6")

	assert.Contains(t, out, "Welcome to the Evening Classes")
	assert.Contains(t, out, "Student ID: 1")
	assert.Contains(t, out, "Balance for Alice: £50")
}

func TestRun_Flags(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		stderr := &bytes.Buffer{}
		err := run(context.Background(), []string{"-h"}, strings.NewReader(""), &bytes.Buffer{}, stderr)
		require.ErrorIs(t, err, flag.ErrHelp)
		assert.Contains(t, stderr.String(), "-no-color")
	})

	t.Run("unknown flag", func(t *testing.T) {
		err := run(context.Background(), []string{"--bogus"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flag provided but not defined")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		err := run(context.Background(), []string{"--config", "/does/not/exist.yaml"},
			strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})
}
