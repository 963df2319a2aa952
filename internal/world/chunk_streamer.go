package world

import "sync"

// ChunkStreamer is the FIFO of chunks waiting for their staged first
// initialization. A coordinate is queued at most once at a time.
type ChunkStreamer struct {
	mu      sync.Mutex
	queue   []ChunkCoord
	pending map[ChunkCoord]struct{}
}

// NewChunkStreamer creates an empty streamer.
func NewChunkStreamer() *ChunkStreamer {
	return &ChunkStreamer{pending: make(map[ChunkCoord]struct{})}
}

// Enqueue adds coord unless it is already waiting. It returns whether the
// coordinate was added.
func (cs *ChunkStreamer) Enqueue(coord ChunkCoord) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	cs.pending[coord] = struct{}{}
	cs.queue = append(cs.queue, coord)
	return true
}

// Next pops the oldest waiting coordinate.
func (cs *ChunkStreamer) Next() (ChunkCoord, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.queue) == 0 {
		return ChunkCoord{}, false
	}
	coord := cs.queue[0]
	cs.queue[0] = ChunkCoord{}
	cs.queue = cs.queue[1:]
	delete(cs.pending, coord)
	return coord, true
}

// Len returns the number of waiting coordinates.
func (cs *ChunkStreamer) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.queue)
}
