package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// lessonUnit is one weekly lesson of a course; day is set when the split-day policy pins the lesson to it
type lessonUnit struct {
	course string
	day    string
}

type capacityShortage struct {
	family   string
	resource string
	units    int
	matched  int
}

func (shortage capacityShortage) String() string {
	return fmt.Sprintf("%v \"%v\" needs %d lessons but only %d fit its slots", shortage.family, shortage.resource, shortage.units, shortage.matched)
}

// probeCapacity looks for a room, professor or batch whose lessons cannot be placed in distinct slots.
// Each lesson unit is matched to a slot it may occupy; a matching smaller than the number of units proves
// the instance infeasible without searching
func probeCapacity(modelInput ModelInput) (*capacityShortage, error) {
	slots := modelInput.Slots()
	slotsAny := lo.Map(slots, func(slot TimeSlot, _ int) any { return slot })
	days := uint64(len(modelInput.days))

	families := []struct {
		name   string
		owners []string
		owned  func(owner string) []string
	}{
		{roomFamily, lo.Map(modelInput.rooms, func(room Room, _ int) string { return room.Id }), modelInput.RoomCourses},
		{professorFamily, lo.Map(modelInput.professors, func(professor Professor, _ int) string { return professor.Id }), modelInput.ProfessorCourses},
		{batchFamily, lo.Map(modelInput.batches, func(batch Batch, _ int) string { return batch.Id }), modelInput.BatchCourses},
	}

	neighbors := func(unitAny any, slotAny any) (bool, error) {
		unit := unitAny.(lessonUnit)
		slot := slotAny.(TimeSlot)
		return unit.day == "" || unit.day == slot.Day, nil
	}

	for _, family := range families {
		for _, owner := range family.owners {
			units := make([]any, 0)
			for _, courseId := range family.owned(owner) {
				course, _ := modelInput.Course(courseId)
				if course.Hours <= days {
					for range course.Hours {
						units = append(units, lessonUnit{course: course.Id})
					}
					continue
				}
				for position, day := range modelInput.days {
					bound, _ := DailyHours(course.Hours, days, uint64(position))
					for range bound {
						units = append(units, lessonUnit{course: course.Id, day: day.Id})
					}
				}
			}
			if len(units) == 0 {
				continue
			}

			graph, err := bipartitegraph.NewBipartiteGraph(units, slotsAny, neighbors)
			if err != nil {
				return nil, err
			}

			if matched := len(graph.LargestMatching()); matched < len(units) {
				return &capacityShortage{family: family.name, resource: owner, units: len(units), matched: matched}, nil
			}
		}
	}

	return nil, nil
}
