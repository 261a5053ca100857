package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyRoomConflict(t *testing.T) {
	//** Arrange
	rawInput := pairedInput()
	rawInput.Batches, rawInput.BatchCourses = nil, nil
	input := mustProcess(t, rawInput)
	assignment := Assignment{
		{Course: "A", Day: "Monday", Hour: 9}: true,
		{Course: "B", Day: "Monday", Hour: 9}: true,
	}

	//** Act
	violations := Verify(assignment, input)

	//** Assert
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Kind: RoomConflict, Resource: "R", Day: "Monday", Hour: 9, Observed: 2, Expected: 1}, violations[0])
}

func TestVerifyEveryResourceFamily(t *testing.T) {
	rawInput := pairedInput()
	rawInput.ProfessorCourses = map[string][]string{"P1": {"A", "B"}}
	input := mustProcess(t, rawInput)
	assignment := Assignment{
		{Course: "A", Day: "Monday", Hour: 10}: true,
		{Course: "B", Day: "Monday", Hour: 10}: true,
		{Course: "B", Day: "Monday", Hour: 9}:  false,
	}

	violations := Verify(assignment, input)

	assert.Equal(t, []Violation{
		{Kind: RoomConflict, Resource: "R", Day: "Monday", Hour: 10, Observed: 2, Expected: 1},
		{Kind: ProfessorConflict, Resource: "P1", Day: "Monday", Hour: 10, Observed: 2, Expected: 1},
		{Kind: BatchConflict, Resource: "G", Day: "Monday", Hour: 10, Observed: 2, Expected: 1},
	}, violations)
}

func TestVerifyHourCounts(t *testing.T) {
	t.Run("missing lessons", func(t *testing.T) {
		input := mustProcess(t, pairedInput())

		violations := Verify(Assignment{}, input)

		assert.Equal(t, []Violation{
			{Kind: HourCount, Resource: "A", Observed: 0, Expected: 1},
			{Kind: HourCount, Resource: "B", Observed: 0, Expected: 1},
		}, violations)
	})

	t.Run("daily bound", func(t *testing.T) {
		//** Arrange
		input := mustProcess(t, singleCourseInput(2, 2))
		assignment := Assignment{
			{Course: "C", Day: "day0", Hour: 9}:  true,
			{Course: "C", Day: "day0", Hour: 10}: true,
		}

		//** Act
		violations := Verify(assignment, input)

		//** Assert
		assert.Equal(t, []Violation{
			{Kind: HourCount, Resource: "C", Day: "day0", Observed: 2, Expected: 1},
		}, violations)
	})

	t.Run("exact double day", func(t *testing.T) {
		input := mustProcess(t, singleCourseInput(3, 2))
		assignment := Assignment{
			{Course: "C", Day: "day0", Hour: 9}:  true,
			{Course: "C", Day: "day1", Hour: 9}:  true,
			{Course: "C", Day: "day1", Hour: 10}: true,
		}

		violations := Verify(assignment, input)

		assert.Equal(t, []Violation{
			{Kind: HourCount, Resource: "C", Day: "day0", Observed: 1, Expected: 2},
			{Kind: HourCount, Resource: "C", Day: "day1", Observed: 2, Expected: 1},
		}, violations)
	})
}

func TestVerifyOutOfDomain(t *testing.T) {
	input := mustProcess(t, pairedInput())
	assignment := Assignment{
		{Course: "A", Day: "Monday", Hour: 9}:  true,
		{Course: "B", Day: "Monday", Hour: 10}: true,
		{Course: "Z", Day: "Monday", Hour: 9}:  true,
		{Course: "A", Day: "Sunday", Hour: 9}:  true,
		{Course: "A", Day: "Monday", Hour: 11}: false,
	}

	violations := Verify(assignment, input)

	assert.Equal(t, []Violation{
		{Kind: OutOfDomain, Resource: "A", Day: "Sunday", Hour: 9, Observed: 1, Expected: 0},
		{Kind: OutOfDomain, Resource: "Z", Day: "Monday", Hour: 9, Observed: 1, Expected: 0},
	}, violations)
}

func TestVerifyMidnightConflictKeepsHour(t *testing.T) {
	//** Arrange
	rawInput := pairedInput()
	rawInput.Days[0].Hours = []uint64{0, 1}
	input := mustProcess(t, rawInput)
	assignment := Assignment{
		{Course: "A", Day: "Monday", Hour: 0}: true,
		{Course: "B", Day: "Monday", Hour: 0}: true,
	}

	//** Act
	violations := Verify(assignment, input)
	encoded, err := json.Marshal(violations)

	//** Assert
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.JSONEq(t, `[
		{"kind": "room", "resource": "R", "day": "Monday", "hour": 0, "observed": 2, "expected": 1},
		{"kind": "batch", "resource": "G", "day": "Monday", "hour": 0, "observed": 2, "expected": 1}
	]`, string(encoded))
}
