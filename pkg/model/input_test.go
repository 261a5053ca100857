package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromJson(t *testing.T) {
	//** Act
	loaded := mustLoad(t, "reference.json")
	expected := mustProcess(t, ReferenceInput())

	//** Assert
	assert.Equal(t, expected, loaded)
	assert.Len(t, loaded.Courses(), 5)
	assert.Len(t, loaded.Slots(), 38)
	assert.Equal(t, []uint64{10, 11, 12, 13, 14, 15, 16}, loaded.DayHours("Monday"))
	assert.Nil(t, loaded.DayHours("Sunday"))
	assert.Equal(t, []string{"Physics", "Math"}, loaded.BatchCourses("2017"))
	assert.Equal(t, []string{"Physics", "Biology"}, loaded.BatchCourses("2019"))

	physics, ok := loaded.Course("Physics")
	require.True(t, ok)
	assert.Equal(t, Course{Id: "Physics", Hours: 5, Room: "201", Professor: "John", Batches: []string{"2017", "2019"}}, physics)
}

func TestInputFromJsonMissingFile(t *testing.T) {
	_, err := InputFromJson(instancesDirectory + "missing.json")
	assert.Error(t, err)
}

// pairedJson is pairedInput written as an input file
const pairedJson = `{
  "rooms": ["R"],
  "courses": [{"name": "A", "hours": 1}, {"name": "B", "hours": 1}],
  "professors": ["P1", "P2"],
  "batches": ["G"],
  "days": [{"name": "Monday", "hours": [9, 10]}],
  "course_rooms": {"A": "R", "B": "R"},
  "professor_courses": {"P1": ["A"], "P2": ["B"]},
  "batch_courses": {"G": ["A", "B"]}
}`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0666))
	return file
}

func TestInputFromJsonPaired(t *testing.T) {
	loaded, err := InputFromJson(writeInput(t, pairedJson))

	require.NoError(t, err)
	assert.Equal(t, mustProcess(t, pairedInput()), loaded)
}

func TestInputFromJsonRejectsMalformedFiles(t *testing.T) {
	scenarios := map[string][2]string{
		"misspelled key":     {`"batch_courses"`, `"batch_course"`},
		"unknown course key": {`{"name": "A", "hours": 1}`, `{"name": "A", "hours": 1, "room": "R"}`},
		"fractional hours":   {`{"name": "A", "hours": 1}`, `{"name": "A", "hours": 1.9}`},
		"fractional hour":    {`"hours": [9, 10]`, `"hours": [9, 10.5]`},
		"negative hours":     {`{"name": "A", "hours": 1}`, `{"name": "A", "hours": -1}`},
		"quoted hours":       {`{"name": "A", "hours": 1}`, `{"name": "A", "hours": "1"}`},
	}

	for name, replacement := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			content := strings.Replace(pairedJson, replacement[0], replacement[1], 1)
			require.NotEqual(t, pairedJson, content)

			//** Act
			_, err := InputFromJson(writeInput(t, content))

			//** Assert
			assert.Error(t, err)
		})
	}
}

func TestProcessRawInputRejects(t *testing.T) {
	scenarios := map[string]func(rawInput *RawModelInput){
		"no rooms":            func(rawInput *RawModelInput) { rawInput.Rooms = []string{} },
		"duplicate room":      func(rawInput *RawModelInput) { rawInput.Rooms = []string{"R", "R"} },
		"zero hours":          func(rawInput *RawModelInput) { rawInput.Courses[0].Hours = 0 },
		"hour out of range":   func(rawInput *RawModelInput) { rawInput.Days[0].Hours = []uint64{9, 24} },
		"unordered hours":     func(rawInput *RawModelInput) { rawInput.Days[0].Hours = []uint64{10, 9} },
		"unknown room":        func(rawInput *RawModelInput) { rawInput.CourseRooms["A"] = "S" },
		"course without room": func(rawInput *RawModelInput) { delete(rawInput.CourseRooms, "B") },
		"room of unknown course": func(rawInput *RawModelInput) {
			rawInput.CourseRooms["C"] = "R"
		},
		"course without professor": func(rawInput *RawModelInput) { delete(rawInput.ProfessorCourses, "P2") },
		"course with two professors": func(rawInput *RawModelInput) {
			rawInput.ProfessorCourses["P2"] = []string{"A", "B"}
		},
		"unknown professor": func(rawInput *RawModelInput) {
			rawInput.ProfessorCourses["P3"] = []string{}
		},
		"batch with unknown course": func(rawInput *RawModelInput) {
			rawInput.BatchCourses["G"] = []string{"A", "C"}
		},
		"unknown batch": func(rawInput *RawModelInput) {
			rawInput.BatchCourses["H"] = []string{"A"}
		},
		"repeated batch course": func(rawInput *RawModelInput) {
			rawInput.BatchCourses["G"] = []string{"A", "A"}
		},
	}

	for name, mutate := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			rawInput := pairedInput()
			mutate(&rawInput)

			//** Act
			_, err := ProcessRawInput(rawInput)

			//** Assert
			assert.Error(t, err)
		})
	}
}

func TestProcessRawInputWithoutBatches(t *testing.T) {
	rawInput := pairedInput()
	rawInput.Batches, rawInput.BatchCourses = nil, nil

	input := mustProcess(t, rawInput)

	assert.Empty(t, input.Batches())
	assert.Equal(t, []string{"A", "B"}, input.RoomCourses("R"))
	assert.Equal(t, []string{"B"}, input.ProfessorCourses("P2"))
}

func TestDailyHours(t *testing.T) {
	type expectation struct {
		bound uint64
		exact bool
	}

	// Seven hours over five days: two double days up front, then single days
	expected := []expectation{{2, true}, {2, true}, {1, true}, {1, true}, {1, true}}
	for day, want := range expected {
		bound, exact := DailyHours(7, 5, uint64(day))
		assert.Equal(t, want, expectation{bound, exact}, "day %d", day)
	}

	for day := range uint64(5) {
		bound, exact := DailyHours(5, 5, day)
		assert.Equal(t, uint64(1), bound)
		assert.False(t, exact)
	}
}
