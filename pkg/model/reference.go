package model

// ReferenceInput returns the five-course week the scheduler was first built for
func ReferenceInput() RawModelInput {
	return RawModelInput{
		Rooms: []string{"201", "202", "203", "204", "205"},
		Courses: []RawCourse{
			{Name: "Physics", Hours: 5},
			{Name: "Math", Hours: 4},
			{Name: "Programming", Hours: 3},
			{Name: "Chemistry", Hours: 7},
			{Name: "Biology", Hours: 2},
		},
		Professors: []string{"John", "Mike", "Alice", "Bob", "Carol"},
		Batches:    []string{"2017", "2018", "2019"},
		Days: []RawDay{
			{Name: "Monday", Hours: hourRange(10, 17)},
			{Name: "Tuesday", Hours: hourRange(9, 17)},
			{Name: "Wednesday", Hours: hourRange(9, 17)},
			{Name: "Thursday", Hours: hourRange(9, 17)},
			{Name: "Friday", Hours: hourRange(10, 17)},
		},
		CourseRooms: map[string]string{
			"Physics":     "201",
			"Math":        "202",
			"Programming": "203",
			"Chemistry":   "204",
			"Biology":     "205",
		},
		ProfessorCourses: map[string][]string{
			"John":  {"Physics"},
			"Mike":  {"Math"},
			"Alice": {"Programming"},
			"Bob":   {"Chemistry"},
			"Carol": {"Biology"},
		},
		BatchCourses: map[string][]string{
			"2017": {"Physics", "Math"},
			"2018": {"Programming", "Chemistry"},
			"2019": {"Biology", "Physics"},
		},
	}
}

// hourRange returns the hours in [from, to)
func hourRange(from, to uint64) []uint64 {
	hours := make([]uint64, 0, to-from)
	for hour := from; hour < to; hour++ {
		hours = append(hours, hour)
	}
	return hours
}
