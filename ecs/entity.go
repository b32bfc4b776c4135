package ecs

import "strconv"

// Entity is an opaque handle: a 32-bit id in the low bits and a 32-bit
// generation in the high bits. The generation invalidates stale handles
// after an id is recycled. The packed form is an ordinary uint64, so
// entities order and hash cheaply as grid and event keys.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether the handle was ever allocated.
func (e Entity) Valid() bool {
	return e.id() > 0
}
