package model

import (
	"fmt"

	"github.com/limaJavier/coursetable/pkg/sat"

	"github.com/samber/lo"
)

const (
	roomFamily      = "room"
	professorFamily = "professor"
	batchFamily     = "batch"
	hoursFamily     = "hours"
)

type constraintState struct {
	modelInput ModelInput
	indexer    indexer
	slots      []TimeSlot
	slotsByDay map[string][]uint64 // Slot positions of each day
	courses    map[string]uint64   // Course positions
}

func newConstraintState(modelInput ModelInput) constraintState {
	slots := modelInput.Slots()
	state := constraintState{
		modelInput: modelInput,
		indexer:    newIndexer(uint64(len(modelInput.courses)), uint64(len(slots))),
		slots:      slots,
		slotsByDay: make(map[string][]uint64),
		courses:    make(map[string]uint64),
	}
	for position, slot := range slots {
		state.slotsByDay[slot.Day] = append(state.slotsByDay[slot.Day], uint64(position))
	}
	for position, course := range modelInput.courses {
		state.courses[course.Id] = uint64(position)
	}
	return state
}

// Room: no two courses of a room at the same slot
func roomConstraints(state constraintState) ([]sat.Group, error) {
	owners := lo.Map(state.modelInput.rooms, func(room Room, _ int) string { return room.Id })
	return exclusionConstraints(state, roomFamily, owners, state.modelInput.RoomCourses), nil
}

// Professor: a professor teaches at most one course at a time
func professorConstraints(state constraintState) ([]sat.Group, error) {
	owners := lo.Map(state.modelInput.professors, func(professor Professor, _ int) string { return professor.Id })
	return exclusionConstraints(state, professorFamily, owners, state.modelInput.ProfessorCourses), nil
}

// Batch: courses of the same batch cannot overlap
func batchConstraints(state constraintState) ([]sat.Group, error) {
	owners := lo.Map(state.modelInput.batches, func(batch Batch, _ int) string { return batch.Id })
	return exclusionConstraints(state, batchFamily, owners, state.modelInput.BatchCourses), nil
}

func exclusionConstraints(state constraintState, family string, owners []string, owned func(owner string) []string) []sat.Group {
	groups := make([]sat.Group, 0)
	for _, owner := range owners {
		courses := owned(owner)
		if len(courses) == 0 {
			continue
		}

		for position, slot := range state.slots {
			groups = append(groups, sat.Group{
				Name:  fmt.Sprintf("%v/%v/%v/%v", family, owner, slot.Day, slot.Hour),
				Kind:  sat.AtMost,
				Bound: 1,
				Variables: lo.Map(courses, func(course string, _ int) uint64 {
					return state.indexer.Index(state.courses[course], uint64(position))
				}),
			})
		}
	}
	return groups
}

// Hours: per-day split-day policy plus the weekly total of every course
func hourConstraints(state constraintState) ([]sat.Group, error) {
	days := uint64(len(state.modelInput.days))
	groups := make([]sat.Group, 0)

	for position, course := range state.modelInput.courses {
		if course.Hours > 2*days {
			return nil, &sat.ModelError{
				Group:  fmt.Sprintf("%v/%v", hoursFamily, course.Id),
				Reason: fmt.Sprintf("%d weekly hours cannot be split over %d days with at most two slots a day", course.Hours, days),
			}
		}

		weekly := sat.Group{
			Name:      fmt.Sprintf("%v/%v", hoursFamily, course.Id),
			Kind:      sat.Exactly,
			Bound:     course.Hours,
			Variables: make([]uint64, 0, len(state.slots)),
		}

		for day, dayValue := range state.modelInput.days {
			variables := lo.Map(state.slotsByDay[dayValue.Id], func(slot uint64, _ int) uint64 {
				return state.indexer.Index(uint64(position), slot)
			})
			weekly.Variables = append(weekly.Variables, variables...)

			bound, exact := DailyHours(course.Hours, days, uint64(day))
			daily := sat.Group{
				Name:      fmt.Sprintf("%v/%v/%v", hoursFamily, course.Id, dayValue.Id),
				Kind:      sat.AtMost,
				Bound:     bound,
				Variables: variables,
			}
			if exact {
				daily.Kind = sat.Exactly
			}
			groups = append(groups, daily)
		}

		groups = append(groups, weekly)
	}

	return groups, nil
}
