package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCapacity(t *testing.T) {
	t.Run("overloaded room", func(t *testing.T) {
		input := mustLoad(t, "shared_room.json")

		shortage, err := probeCapacity(input)

		require.NoError(t, err)
		require.NotNil(t, shortage)
		assert.Equal(t, capacityShortage{family: roomFamily, resource: "101", units: 6, matched: 4}, *shortage)
		assert.Equal(t, `room "101" needs 6 lessons but only 4 fit its slots`, shortage.String())
	})

	t.Run("pinned double day", func(t *testing.T) {
		// Two split-day courses in one room both need two lessons on day0, which only has three hours
		rawInput := singleCourseInput(3, 2)
		rawInput.Courses = append(rawInput.Courses, RawCourse{Name: "D", Hours: 3})
		rawInput.CourseRooms["D"] = "R"
		rawInput.Professors = append(rawInput.Professors, "Q")
		rawInput.ProfessorCourses["Q"] = []string{"D"}
		input := mustProcess(t, rawInput)

		shortage, err := probeCapacity(input)

		require.NoError(t, err)
		require.NotNil(t, shortage)
		assert.Equal(t, "R", shortage.resource)
		assert.Equal(t, 5, shortage.matched)
	})

	t.Run("reference fits", func(t *testing.T) {
		shortage, err := probeCapacity(mustLoad(t, "reference.json"))

		require.NoError(t, err)
		assert.Nil(t, shortage)
	})
}
