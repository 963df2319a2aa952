package world

import "sync/atomic"

// ChunkStore is the fixed world grid. Slots are allocated up front and never
// resized; each holds at most one chunk for the lifetime of the world.
type ChunkStore struct {
	size  int
	slots []atomic.Pointer[Chunk]
	count atomic.Int64
}

// NewChunkStore creates an empty size x size grid.
func NewChunkStore(size int) *ChunkStore {
	return &ChunkStore{
		size:  size,
		slots: make([]atomic.Pointer[Chunk], size*size),
	}
}

// Size returns the grid edge length in chunks.
func (cs *ChunkStore) Size() int {
	return cs.size
}

// InBounds reports whether coord addresses a grid slot.
func (cs *ChunkStore) InBounds(coord ChunkCoord) bool {
	return coord.X >= 0 && coord.X < cs.size && coord.Z >= 0 && coord.Z < cs.size
}

// Get returns the chunk at coord, or nil when absent or out of bounds.
func (cs *ChunkStore) Get(coord ChunkCoord) *Chunk {
	if !cs.InBounds(coord) {
		return nil
	}
	return cs.slots[coord.X*cs.size+coord.Z].Load()
}

// GetOrCreate returns the chunk at coord, creating it with newFn if the slot
// is empty. created is true when this call installed the chunk.
func (cs *ChunkStore) GetOrCreate(coord ChunkCoord, newFn func() *Chunk) (chunk *Chunk, created bool) {
	if !cs.InBounds(coord) {
		return nil, false
	}
	slot := &cs.slots[coord.X*cs.size+coord.Z]
	if ch := slot.Load(); ch != nil {
		return ch, false
	}
	ch := newFn()
	if slot.CompareAndSwap(nil, ch) {
		cs.count.Add(1)
		return ch, true
	}
	return slot.Load(), false
}

// Count returns the number of allocated chunks.
func (cs *ChunkStore) Count() int {
	return int(cs.count.Load())
}

// All returns every allocated chunk.
func (cs *ChunkStore) All() []*Chunk {
	out := make([]*Chunk, 0, cs.Count())
	for i := range cs.slots {
		if ch := cs.slots[i].Load(); ch != nil {
			out = append(out, ch)
		}
	}
	return out
}
