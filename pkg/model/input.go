package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var inputValidator = validator.New()

type RawCourse struct {
	Name  string `validate:"required"`
	Hours uint64 `validate:"gte=1"`
}

type RawDay struct {
	Name  string   `validate:"required"`
	Hours []uint64 `validate:"required,min=1,dive,lte=23"`
}

// RawModelInput is the roster as supplied by a loader, before consistency checks
type RawModelInput struct {
	Rooms            []string            `validate:"required,min=1,dive,required"`
	Courses          []RawCourse         `validate:"required,min=1,dive"`
	Professors       []string            `validate:"required,min=1,dive,required"`
	Batches          []string            `validate:"dive,required"`
	Days             []RawDay            `validate:"required,min=1,dive"`
	CourseRooms      map[string]string   `mapstructure:"course_rooms" validate:"required"`
	ProfessorCourses map[string][]string `mapstructure:"professor_courses" validate:"required"`
	BatchCourses     map[string][]string `mapstructure:"batch_courses"`
}

type Course struct {
	Id        string
	Hours     uint64 // Weekly lecture hours
	Room      string
	Professor string
	Batches   []string
}

type Room struct {
	Id string
}

type Professor struct {
	Id string
}

type Batch struct {
	Id string
}

type Day struct {
	Id    string
	Hours []uint64 // Valid hours in increasing order
}

type TimeSlot struct {
	Day  string
	Hour uint64
}

// ModelInput is an immutable, internally consistent snapshot of the domain
type ModelInput struct {
	courses    []Course
	rooms      []Room
	professors []Professor
	batches    []Batch
	days       []Day

	courseIndex      map[string]int
	roomCourses      map[string][]string
	professorCourses map[string][]string
	batchCourses     map[string][]string
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  wholeNumberHook,
		ErrorUnused: true,
		Result:      &rawInput,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput)
}

// wholeNumberHook rejects JSON numbers with a fractional part headed for an integer field
func wholeNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if number := data.(float64); number != math.Trunc(number) {
			return nil, fmt.Errorf("%v is not a whole number", number)
		}
	}
	return data, nil
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := inputValidator.Struct(rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("invalid input: %w", err)
	}

	//** Verify identifiers are unique
	for kind, ids := range map[string][]string{
		"room":      rawInput.Rooms,
		"course":    lo.Map(rawInput.Courses, func(course RawCourse, _ int) string { return course.Name }),
		"professor": rawInput.Professors,
		"batch":     rawInput.Batches,
		"day":       lo.Map(rawInput.Days, func(day RawDay, _ int) string { return day.Name }),
	} {
		if duplicates := lo.FindDuplicates(ids); len(duplicates) > 0 {
			return ModelInput{}, fmt.Errorf("duplicate %v identifiers: %v", kind, duplicates)
		}
	}

	input := ModelInput{
		rooms:            lo.Map(rawInput.Rooms, func(room string, _ int) Room { return Room{Id: room} }),
		professors:       lo.Map(rawInput.Professors, func(professor string, _ int) Professor { return Professor{Id: professor} }),
		batches:          lo.Map(rawInput.Batches, func(batch string, _ int) Batch { return Batch{Id: batch} }),
		courseIndex:      make(map[string]int),
		roomCourses:      make(map[string][]string),
		professorCourses: make(map[string][]string),
		batchCourses:     make(map[string][]string),
	}

	//** Manage days
	for _, rawDay := range rawInput.Days {
		for i := 1; i < len(rawDay.Hours); i++ {
			if rawDay.Hours[i] <= rawDay.Hours[i-1] {
				return ModelInput{}, fmt.Errorf("hours of day \"%v\" must be strictly increasing: %v", rawDay.Name, rawDay.Hours)
			}
		}
		input.days = append(input.days, Day{Id: rawDay.Name, Hours: slices.Clone(rawDay.Hours)})
	}

	//** Manage courses and their rooms
	for index, rawCourse := range rawInput.Courses {
		room, ok := rawInput.CourseRooms[rawCourse.Name]
		if !ok {
			return ModelInput{}, fmt.Errorf("course \"%v\" has no room", rawCourse.Name)
		} else if !slices.Contains(rawInput.Rooms, room) {
			return ModelInput{}, fmt.Errorf("course \"%v\" is assigned to unknown room \"%v\"", rawCourse.Name, room)
		}

		input.courseIndex[rawCourse.Name] = index
		input.courses = append(input.courses, Course{Id: rawCourse.Name, Hours: rawCourse.Hours, Room: room})
	}
	for course := range rawInput.CourseRooms {
		if _, ok := input.courseIndex[course]; !ok {
			return ModelInput{}, fmt.Errorf("room assigned to unknown course \"%v\"", course)
		}
	}

	//** Manage professors
	for professor, courses := range rawInput.ProfessorCourses {
		if !slices.Contains(rawInput.Professors, professor) {
			return ModelInput{}, fmt.Errorf("courses assigned to unknown professor \"%v\"", professor)
		}
		for _, course := range courses {
			index, ok := input.courseIndex[course]
			if !ok {
				return ModelInput{}, fmt.Errorf("professor \"%v\" teaches unknown course \"%v\"", professor, course)
			} else if input.courses[index].Professor != "" {
				return ModelInput{}, fmt.Errorf("course \"%v\" is taught by both \"%v\" and \"%v\"", course, input.courses[index].Professor, professor)
			}
			input.courses[index].Professor = professor
		}
	}

	//** Manage batches
	for batch, courses := range rawInput.BatchCourses {
		if !slices.Contains(rawInput.Batches, batch) {
			return ModelInput{}, fmt.Errorf("courses assigned to unknown batch \"%v\"", batch)
		} else if duplicates := lo.FindDuplicates(courses); len(duplicates) > 0 {
			return ModelInput{}, fmt.Errorf("batch \"%v\" lists courses more than once: %v", batch, duplicates)
		}
		for _, course := range courses {
			if _, ok := input.courseIndex[course]; !ok {
				return ModelInput{}, fmt.Errorf("batch \"%v\" attends unknown course \"%v\"", batch, course)
			}
		}
	}

	//** Build ownership in course order so every derived list is deterministic
	for index := range input.courses {
		course := &input.courses[index]
		if course.Professor == "" {
			return ModelInput{}, fmt.Errorf("course \"%v\" has no professor", course.Id)
		}
		input.roomCourses[course.Room] = append(input.roomCourses[course.Room], course.Id)
		input.professorCourses[course.Professor] = append(input.professorCourses[course.Professor], course.Id)

		for _, batch := range rawInput.Batches {
			if slices.Contains(rawInput.BatchCourses[batch], course.Id) {
				course.Batches = append(course.Batches, batch)
				input.batchCourses[batch] = append(input.batchCourses[batch], course.Id)
			}
		}
	}

	return input, nil
}

func (input ModelInput) Courses() []Course {
	return slices.Clone(input.courses)
}

func (input ModelInput) Rooms() []Room {
	return slices.Clone(input.rooms)
}

func (input ModelInput) Professors() []Professor {
	return slices.Clone(input.professors)
}

func (input ModelInput) Batches() []Batch {
	return slices.Clone(input.batches)
}

func (input ModelInput) Days() []Day {
	return slices.Clone(input.days)
}

// Course returns the course with the given identifier
func (input ModelInput) Course(id string) (Course, bool) {
	index, ok := input.courseIndex[id]
	if !ok {
		return Course{}, false
	}
	return input.courses[index], true
}

// DayHours returns the valid hours of a day, nil if the day does not exist
func (input ModelInput) DayHours(day string) []uint64 {
	found, ok := lo.Find(input.days, func(candidate Day) bool { return candidate.Id == day })
	if !ok {
		return nil
	}
	return slices.Clone(found.Hours)
}

// Slots returns every valid (day, hour) pair in day order
func (input ModelInput) Slots() []TimeSlot {
	slots := make([]TimeSlot, 0)
	for _, day := range input.days {
		for _, hour := range day.Hours {
			slots = append(slots, TimeSlot{Day: day.Id, Hour: hour})
		}
	}
	return slots
}

func (input ModelInput) RoomCourses(room string) []string {
	return slices.Clone(input.roomCourses[room])
}

func (input ModelInput) ProfessorCourses(professor string) []string {
	return slices.Clone(input.professorCourses[professor])
}

func (input ModelInput) BatchCourses(batch string) []string {
	return slices.Clone(input.batchCourses[batch])
}

// DailyHours returns the bound the split-day policy puts on the given day (0-based position in the week)
// for a course with the given weekly hours. A course with no more hours than days takes at most one slot a
// day; otherwise the first hours-days days take exactly two slots and the remaining days exactly one
func DailyHours(hours, days, day uint64) (bound uint64, exact bool) {
	if hours <= days {
		return 1, false
	} else if day < hours-days {
		return 2, true
	}
	return 1, true
}
