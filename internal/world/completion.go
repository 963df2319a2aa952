package world

import (
	"sync"

	"voxelworld/internal/meshing"
)

// MeshUpdate is a finished rebuild waiting to be presented.
type MeshUpdate struct {
	Coord      ChunkCoord
	Generation uint64
	Mesh       *meshing.Mesh
}

// CompletionQueue carries finished meshes from workers to the scheduler.
type CompletionQueue struct {
	mu    sync.Mutex
	items []MeshUpdate
}

// Push appends u. Safe from any goroutine.
func (q *CompletionQueue) Push(u MeshUpdate) {
	q.mu.Lock()
	q.items = append(q.items, u)
	q.mu.Unlock()
}

// Drain removes up to max updates in FIFO order.
func (q *CompletionQueue) Drain(max int) []MeshUpdate {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := min(max, len(q.items))
	if n <= 0 {
		return nil
	}
	out := make([]MeshUpdate, n)
	copy(out, q.items[:n])
	clear(q.items[:n])
	q.items = q.items[n:]
	return out
}

// Len returns the number of queued updates.
func (q *CompletionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
