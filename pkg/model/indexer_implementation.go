package model

// Course-major layout, so increasing indices follow the (course, day, hour) lexical order
type indexerImplementation struct {
	courses uint64
	slots   uint64
}

func (indexer *indexerImplementation) Index(course, slot uint64) uint64 {
	return slot + indexer.slots*course
}

func (indexer *indexerImplementation) Attributes(index uint64) (course, slot uint64) {
	slot = index % indexer.slots
	course = index / indexer.slots
	return course, slot
}

func (indexer *indexerImplementation) Size() uint64 {
	return indexer.courses * indexer.slots
}
