package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

type ViolationKind string

const (
	RoomConflict      ViolationKind = "room"
	ProfessorConflict ViolationKind = "professor"
	BatchConflict     ViolationKind = "batch"
	HourCount         ViolationKind = "hour-count"
	OutOfDomain       ViolationKind = "domain" // A true variable that names an unknown course or slot
)

// Violation describes one unsatisfied constraint. Day is empty when the constraint spans the week; Hour
// only applies to resource conflicts and domain records
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Resource string        `json:"resource"`
	Day      string        `json:"day,omitempty"`
	Hour     uint64        `json:"hour"`
	Observed uint64        `json:"observed"`
	Expected uint64        `json:"expected"`
}

// Verify rechecks an assignment against every constraint class straight from the domain model, regardless
// of where the assignment comes from. An empty result means the assignment is a valid timetable
func Verify(assignment Assignment, modelInput ModelInput) []Violation {
	violations := make([]Violation, 0)

	//** Collect taught slots
	valid := make(map[TimeSlot]bool)
	for _, slot := range modelInput.Slots() {
		valid[slot] = true
	}

	taught := make(map[string]map[TimeSlot]bool)
	outOfDomain := make([]Violation, 0)
	for variable, value := range assignment {
		if !value {
			continue
		}

		slot := TimeSlot{Day: variable.Day, Hour: variable.Hour}
		if _, ok := modelInput.courseIndex[variable.Course]; !ok || !valid[slot] {
			outOfDomain = append(outOfDomain, Violation{Kind: OutOfDomain, Resource: variable.Course, Day: variable.Day, Hour: variable.Hour, Observed: 1, Expected: 0})
			continue
		}

		if _, ok := taught[variable.Course]; !ok {
			taught[variable.Course] = make(map[TimeSlot]bool)
		}
		taught[variable.Course][slot] = true
	}
	slices.SortFunc(outOfDomain, func(a, b Violation) int {
		return cmp.Or(cmp.Compare(a.Resource, b.Resource), cmp.Compare(a.Day, b.Day), cmp.Compare(a.Hour, b.Hour))
	})
	violations = append(violations, outOfDomain...)

	//** Check resource exclusivity
	check := func(kind ViolationKind, owner string, courses []string) {
		for _, slot := range modelInput.Slots() {
			count := uint64(lo.CountBy(courses, func(course string) bool { return taught[course][slot] }))
			if count > 1 {
				violations = append(violations, Violation{Kind: kind, Resource: owner, Day: slot.Day, Hour: slot.Hour, Observed: count, Expected: 1})
			}
		}
	}
	for _, room := range modelInput.rooms {
		check(RoomConflict, room.Id, modelInput.RoomCourses(room.Id))
	}
	for _, professor := range modelInput.professors {
		check(ProfessorConflict, professor.Id, modelInput.ProfessorCourses(professor.Id))
	}
	for _, batch := range modelInput.batches {
		check(BatchConflict, batch.Id, modelInput.BatchCourses(batch.Id))
	}

	//** Check hour targets
	days := uint64(len(modelInput.days))
	for _, course := range modelInput.courses {
		total := uint64(0)
		for position, day := range modelInput.days {
			count := uint64(lo.CountBy(day.Hours, func(hour uint64) bool {
				return taught[course.Id][TimeSlot{Day: day.Id, Hour: hour}]
			}))
			total += count

			bound, exact := DailyHours(course.Hours, days, uint64(position))
			if count > bound || (exact && count != bound) {
				violations = append(violations, Violation{Kind: HourCount, Resource: course.Id, Day: day.Id, Observed: count, Expected: bound})
			}
		}

		if total != course.Hours {
			violations = append(violations, Violation{Kind: HourCount, Resource: course.Id, Observed: total, Expected: course.Hours})
		}
	}

	return violations
}
