package model

// Lesson is a course held in its room; the zero value marks a free slot
type Lesson struct {
	Course string `json:"course,omitempty"`
	Room   string `json:"room,omitempty"`
}

// Schedule maps a day and an hour to the lesson held then
type Schedule map[string]map[uint64]Lesson

// Project builds the per-batch and per-professor views of a valid assignment
func Project(assignment Assignment, modelInput ModelInput) (batches map[string]Schedule, professors map[string]Schedule) {
	emptySchedule := func() Schedule {
		schedule := make(Schedule)
		for _, day := range modelInput.days {
			schedule[day.Id] = make(map[uint64]Lesson)
			for _, hour := range day.Hours {
				schedule[day.Id][hour] = Lesson{}
			}
		}
		return schedule
	}

	batches = make(map[string]Schedule)
	for _, batch := range modelInput.batches {
		batches[batch.Id] = emptySchedule()
	}
	professors = make(map[string]Schedule)
	for _, professor := range modelInput.professors {
		professors[professor.Id] = emptySchedule()
	}

	// Walk the variable space in order so the first course wins if a slot is doubly booked
	for _, course := range modelInput.courses {
		lesson := Lesson{Course: course.Id, Room: course.Room}
		for _, slot := range modelInput.Slots() {
			if !assignment[Variable{Course: course.Id, Day: slot.Day, Hour: slot.Hour}] {
				continue
			}

			for _, batch := range course.Batches {
				if batches[batch][slot.Day][slot.Hour] == (Lesson{}) {
					batches[batch][slot.Day][slot.Hour] = lesson
				}
			}
			if professors[course.Professor][slot.Day][slot.Hour] == (Lesson{}) {
				professors[course.Professor][slot.Day][slot.Hour] = lesson
			}
		}
	}

	return batches, professors
}
