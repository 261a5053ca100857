package model

import (
	"fmt"
	"math/rand/v2"
)

// GenerateInput builds a random, well-formed roster. Every course gets its own professor and room with
// probability one half, otherwise it shares one already drawn. Days hold at least two hours and weekly hours
// never exceed days+2, so the compiled problem is always well formed, although it may be infeasible
func GenerateInput(rng *rand.Rand, courses, batches, days int) RawModelInput {
	courses, batches, days = max(courses, 1), max(batches, 0), max(days, 2)

	rawInput := RawModelInput{
		CourseRooms:      make(map[string]string),
		ProfessorCourses: make(map[string][]string),
		BatchCourses:     make(map[string][]string),
	}

	for day := range days {
		hours := make([]uint64, 0)
		start := uint64(8 + rng.IntN(3))
		for hour := range uint64(2 + rng.IntN(3)) {
			hours = append(hours, start+hour)
		}
		rawInput.Days = append(rawInput.Days, RawDay{Name: fmt.Sprintf("day%d", day), Hours: hours})
	}

	for batch := range batches {
		rawInput.Batches = append(rawInput.Batches, fmt.Sprintf("batch%d", batch))
	}

	for index := range courses {
		course := fmt.Sprintf("course%d", index)
		rawInput.Courses = append(rawInput.Courses, RawCourse{Name: course, Hours: uint64(1 + rng.IntN(days+2))})

		if len(rawInput.Rooms) == 0 || rng.IntN(2) == 0 {
			rawInput.Rooms = append(rawInput.Rooms, fmt.Sprintf("room%d", len(rawInput.Rooms)))
		}
		rawInput.CourseRooms[course] = rawInput.Rooms[rng.IntN(len(rawInput.Rooms))]

		if len(rawInput.Professors) == 0 || rng.IntN(2) == 0 {
			rawInput.Professors = append(rawInput.Professors, fmt.Sprintf("professor%d", len(rawInput.Professors)))
		}
		professor := rawInput.Professors[rng.IntN(len(rawInput.Professors))]
		rawInput.ProfessorCourses[professor] = append(rawInput.ProfessorCourses[professor], course)

		for _, batch := range rawInput.Batches {
			if rng.IntN(3) == 0 {
				rawInput.BatchCourses[batch] = append(rawInput.BatchCourses[batch], course)
			}
		}
	}

	return rawInput
}
