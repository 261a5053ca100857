package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const instancesDirectory = "../../test/instances/"

// pairedInput is a single Monday with two hours where courses A and B share room R and batch G
func pairedInput() RawModelInput {
	return RawModelInput{
		Rooms:      []string{"R"},
		Courses:    []RawCourse{{Name: "A", Hours: 1}, {Name: "B", Hours: 1}},
		Professors: []string{"P1", "P2"},
		Batches:    []string{"G"},
		Days:       []RawDay{{Name: "Monday", Hours: []uint64{9, 10}}},
		CourseRooms: map[string]string{
			"A": "R",
			"B": "R",
		},
		ProfessorCourses: map[string][]string{
			"P1": {"A"},
			"P2": {"B"},
		},
		BatchCourses: map[string][]string{
			"G": {"A", "B"},
		},
	}
}

func mustProcess(t *testing.T, rawInput RawModelInput) ModelInput {
	t.Helper()
	input, err := ProcessRawInput(rawInput)
	require.NoError(t, err)
	return input
}

func mustLoad(t *testing.T, file string) ModelInput {
	t.Helper()
	input, err := InputFromJson(instancesDirectory + file)
	require.NoError(t, err)
	return input
}
