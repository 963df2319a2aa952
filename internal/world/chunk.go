package world

import (
	"fmt"
	"sync"
	"sync/atomic"

	"voxelworld/internal/meshing"
	"voxelworld/internal/profiling"
	"voxelworld/internal/voxel"
)

// ChunkState is the lifecycle stage of a chunk.
type ChunkState int32

const (
	StateEmpty ChunkState = iota
	StatePopulating
	StateReady
	StateRebuilding
)

func (s ChunkState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulating:
		return "populating"
	case StateReady:
		return "ready"
	case StateRebuilding:
		return "rebuilding"
	}
	return fmt.Sprintf("ChunkState(%d)", int32(s))
}

// voxelGrid is an immutable snapshot of a chunk's voxels.
type voxelGrid struct {
	width, height, length int
	data                  []voxel.ID
}

func (g *voxelGrid) index(x, y, z int) int {
	return (x*g.height+y)*g.length + z
}

func (g *voxelGrid) at(x, y, z int) voxel.ID {
	return g.data[g.index(x, y, z)]
}

func (g *voxelGrid) contains(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.length
}

type voxelEdit struct {
	pos BlockPos
	id  voxel.ID
}

// Chunk is one column of the world grid. The voxel snapshot is read lock-free
// from any goroutine; only the worker holding the Rebuilding state mutates
// the chunk's builder or publishes new snapshots.
type Chunk struct {
	coord                 ChunkCoord
	width, height, length int

	state  atomic.Int32
	voxels atomic.Pointer[voxelGrid]

	editMu sync.Mutex
	edits  []voxelEdit

	active           atomic.Bool
	generation       atomic.Uint64
	rebuildRequested atomic.Bool
	meshStale        atomic.Bool
	// completions pushed but not yet drained
	undelivered atomic.Int32
	building    atomic.Int32

	builder *meshing.Builder
}

func newChunk(coord ChunkCoord, width, height, length int, builder *meshing.Builder) *Chunk {
	return &Chunk{
		coord:   coord,
		width:   width,
		height:  height,
		length:  length,
		builder: builder,
	}
}

// Coord returns the chunk's grid position.
func (c *Chunk) Coord() ChunkCoord {
	return c.coord
}

// Origin returns the world block position of local (0, 0, 0).
func (c *Chunk) Origin() BlockPos {
	return BlockPos{X: c.coord.X * c.width, Z: c.coord.Z * c.length}
}

// State returns the current lifecycle stage.
func (c *Chunk) State() ChunkState {
	return ChunkState(c.state.Load())
}

// IsActive reports whether the chunk is inside the observer's window.
func (c *Chunk) IsActive() bool {
	return c.active.Load()
}

// IsEditable reports whether edits would be applied by an immediate rebuild.
func (c *Chunk) IsEditable() bool {
	return c.State() == StateReady
}

// Populated reports whether voxel data has been published.
func (c *Chunk) Populated() bool {
	return c.voxels.Load() != nil
}

// Generation returns the current rebuild generation.
func (c *Chunk) Generation() uint64 {
	return c.generation.Load()
}

// Voxel returns the voxel at local coordinates. Positions above or below the
// chunk are air.
func (c *Chunk) Voxel(x, y, z int) (voxel.ID, error) {
	g := c.voxels.Load()
	if g == nil {
		return voxel.Air, fmt.Errorf("chunk %v: %w", c.coord, ErrNotYetPopulated)
	}
	if x < 0 || x >= c.width || z < 0 || z >= c.length {
		return voxel.Air, fmt.Errorf("chunk %v local (%d,%d,%d): %w", c.coord, x, y, z, ErrOutsideChunk)
	}
	if y < 0 || y >= c.height {
		return voxel.Air, nil
	}
	return g.at(x, y, z), nil
}

func (c *Chunk) setState(from, to ChunkState) bool {
	return c.state.CompareAndSwap(int32(from), int32(to))
}

// populate fills the chunk from gen at absolute world positions and publishes
// the first snapshot. It runs at most once per chunk.
func (c *Chunk) populate(gen *Generator) error {
	defer profiling.Track("world.populate")()
	if !c.setState(StateEmpty, StatePopulating) {
		return fmt.Errorf("populate chunk %v in state %v", c.coord, c.State())
	}

	g := &voxelGrid{
		width:  c.width,
		height: c.height,
		length: c.length,
		data:   make([]voxel.ID, c.width*c.height*c.length),
	}
	origin := c.Origin()
	for x := 0; x < c.width; x++ {
		for y := 0; y < c.height; y++ {
			for z := 0; z < c.length; z++ {
				g.data[g.index(x, y, z)] = gen.Generate(origin.X+x, y, origin.Z+z)
			}
		}
	}

	c.voxels.Store(g)
	c.state.Store(int32(StateReady))
	return nil
}

// QueueEdit records a world-space edit for the next rebuild.
func (c *Chunk) QueueEdit(pos BlockPos, id voxel.ID) {
	c.editMu.Lock()
	c.edits = append(c.edits, voxelEdit{pos: pos, id: id})
	c.editMu.Unlock()
}

// PendingEdits returns the number of queued edits.
func (c *Chunk) PendingEdits() int {
	c.editMu.Lock()
	defer c.editMu.Unlock()
	return len(c.edits)
}

// applyQueuedEdits drains the edit queue into a fresh snapshot and returns the
// neighbouring chunks whose shared face touches an edited cell.
func (c *Chunk) applyQueuedEdits() []ChunkCoord {
	c.editMu.Lock()
	edits := c.edits
	c.edits = nil
	c.editMu.Unlock()

	if len(edits) == 0 {
		return nil
	}

	cur := c.voxels.Load()
	next := &voxelGrid{
		width:  cur.width,
		height: cur.height,
		length: cur.length,
		data:   make([]voxel.ID, len(cur.data)),
	}
	copy(next.data, cur.data)

	origin := c.Origin()
	var touched []ChunkCoord
	addNeighbor := func(n ChunkCoord) {
		for _, t := range touched {
			if t == n {
				return
			}
		}
		touched = append(touched, n)
	}

	for _, e := range edits {
		x, y, z := e.pos.X-origin.X, e.pos.Y, e.pos.Z-origin.Z
		if !next.contains(x, y, z) {
			continue
		}
		next.data[next.index(x, y, z)] = e.id

		if x == 0 {
			addNeighbor(c.coord.Add(-1, 0))
		} else if x == c.width-1 {
			addNeighbor(c.coord.Add(1, 0))
		}
		if z == 0 {
			addNeighbor(c.coord.Add(0, -1))
		} else if z == c.length-1 {
			addNeighbor(c.coord.Add(0, 1))
		}
	}

	c.voxels.Store(next)
	return touched
}
