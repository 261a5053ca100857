package model

// indexer interface is design to give a unique dense index to a (course, slot) pair and vice versa
type indexer interface {
	// Returns a unique index to a course (position in the input) and slot (position in the week)
	Index(course, slot uint64) uint64
	// Returns the course and slot positions from a unique index
	Attributes(index uint64) (course uint64, slot uint64)
	// Total number of indices
	Size() uint64
}

func newIndexer(courses, slots uint64) indexer {
	return &indexerImplementation{
		courses: courses,
		slots:   slots,
	}
}
