package world

import (
	"context"
	"fmt"
	"log/slog"

	"voxelworld/internal/config"
	"voxelworld/internal/meshing"
	"voxelworld/internal/profiling"
	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// Presenter receives finished meshes and visibility changes. It is only
// called from the goroutine driving Tick and OnObserverMoved.
type Presenter interface {
	// PresentMesh replaces the displayed mesh of a chunk. The mesh is a
	// private copy.
	PresentMesh(coord ChunkCoord, mesh *meshing.Mesh)
	// SetChunkActive shows or hides a chunk without discarding its mesh.
	SetChunkActive(coord ChunkCoord, active bool)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) PresentMesh(ChunkCoord, *meshing.Mesh) {}
func (NopPresenter) SetChunkActive(ChunkCoord, bool)       {}

// Options configures a World.
type Options struct {
	Settings  config.Settings
	Seed      int64
	Biome     *Biome             // nil selects DefaultBiome
	Registry  *registry.Registry // nil selects registry.Default
	Presenter Presenter          // nil discards output
	Logger    *slog.Logger
}

// TickStats reports the work done by one Tick.
type TickStats struct {
	Initialized        int // staged initializations started
	Presented          int // meshes handed to the presenter
	Discarded          int // stale or inactive completions dropped
	PendingInit        int
	PendingCompletions int
}

// Stats is a point-in-time summary of the world.
type Stats struct {
	Allocated      int
	Active         int
	Ready          int
	PendingInit    int
	PendingMeshes  int
	RunningWorkers int64
}

// World streams chunks around a moving observer. Methods other than the
// read-only queries must be called from a single coordinating goroutine.
type World struct {
	settings  config.Settings
	reg       *registry.Registry
	gen       *Generator
	store     *ChunkStore
	streamer  *ChunkStreamer
	completed CompletionQueue
	pool      *WorkerPool
	presenter Presenter
	log       *slog.Logger

	observer    ChunkCoord
	hasObserver bool
	active      map[ChunkCoord]struct{}
}

// New creates a world with an empty grid. No chunk exists until the observer
// is placed with OnObserverMoved or GenerateSpawnArea.
func New(opts Options) (*World, error) {
	s := opts.Settings
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("world settings: %w", err)
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Biome == nil {
		opts.Biome = DefaultBiome()
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	for _, id := range terrainBlocks {
		if _, err := opts.Registry.Get(id); err != nil {
			return nil, fmt.Errorf("terrain block: %w", err)
		}
	}
	for _, l := range opts.Biome.Lodes {
		if _, err := opts.Registry.Get(l.BlockID); err != nil {
			return nil, fmt.Errorf("biome %q lode %q: %w", opts.Biome.Name, l.Name, err)
		}
	}

	log := opts.Logger.With("component", "world")
	w := &World{
		settings:  s,
		reg:       opts.Registry,
		gen:       NewGenerator(opts.Seed, opts.Biome, s.ChunkWidth, s.ChunkHeight, s.WorldSizeInVoxels()),
		store:     NewChunkStore(s.WorldSizeInChunks),
		streamer:  NewChunkStreamer(),
		pool:      NewWorkerPool(s.Workers, log),
		presenter: opts.Presenter,
		log:       log,
		active:    make(map[ChunkCoord]struct{}),
	}
	log.Info("world created",
		"seed", opts.Seed,
		"biome", opts.Biome.Name,
		"size_chunks", s.WorldSizeInChunks,
		"view_distance", s.ViewDistance,
		"workers", s.Workers)
	return w, nil
}

// Settings returns the validated session settings.
func (w *World) Settings() config.Settings {
	return w.settings
}

// Generator returns the terrain generator.
func (w *World) Generator() *Generator {
	return w.gen
}

// Registry returns the block registry.
func (w *World) Registry() *registry.Registry {
	return w.reg
}

// Observer returns the chunk the observer is in.
func (w *World) Observer() ChunkCoord {
	return w.observer
}

// Spawn returns the default observer position: the world centre, high above
// the terrain.
func (w *World) Spawn() mgl32.Vec3 {
	c := float32(w.settings.WorldSizeInVoxels()) / 2
	return mgl32.Vec3{c, float32(w.settings.ChunkHeight - 50), c}
}

// OnObserverMoved updates the active window when pos lies in a different
// chunk than before. It returns whether the window was recomputed.
func (w *World) OnObserverMoved(pos mgl32.Vec3) bool {
	coord := CoordFromPosition(pos, w.settings.ChunkWidth, w.settings.ChunkLength)
	if w.hasObserver && coord == w.observer {
		return false
	}
	w.observer = coord
	w.hasObserver = true
	w.recomputeActiveSet()
	return true
}

func (w *World) newChunk(coord ChunkCoord) *Chunk {
	s := w.settings
	return newChunk(coord, s.ChunkWidth, s.ChunkHeight, s.ChunkLength,
		meshing.NewBuilder(s.AtlasSizeInBlocks, s.OcclusionDarkness))
}

func (w *World) recomputeActiveSet() {
	defer profiling.Track("world.recomputeActiveSet")()
	r := w.settings.ViewDistance
	c := w.observer

	next := make(map[ChunkCoord]struct{}, (2*r+1)*(2*r+1))
	for x := c.X - r; x <= c.X+r; x++ {
		for z := c.Z - r; z <= c.Z+r; z++ {
			coord := ChunkCoord{X: x, Z: z}
			if !w.store.InBounds(coord) {
				continue
			}
			next[coord] = struct{}{}
			if _, ok := w.active[coord]; ok {
				continue
			}
			ch, _ := w.store.GetOrCreate(coord, func() *Chunk { return w.newChunk(coord) })
			w.activate(ch)
		}
	}

	for coord := range w.active {
		if _, ok := next[coord]; ok {
			continue
		}
		if ch := w.store.Get(coord); ch != nil {
			w.deactivate(ch)
		}
	}
	w.active = next
}

func (w *World) activate(c *Chunk) {
	c.active.Store(true)
	if c.State() == StateEmpty {
		w.streamer.Enqueue(c.coord)
		return
	}
	w.presenter.SetChunkActive(c.coord, true)
	if c.meshStale.Swap(false) {
		w.requestRebuild(c)
	}
}

// deactivate hides c. Data is kept; results still in flight become stale.
func (w *World) deactivate(c *Chunk) {
	c.active.Store(false)
	c.generation.Add(1)
	w.presenter.SetChunkActive(c.coord, false)
}

// ActiveChunks returns the number of chunks in the observer window.
func (w *World) ActiveChunks() int {
	return len(w.active)
}

// IsActive reports whether coord is in the observer window.
func (w *World) IsActive(coord ChunkCoord) bool {
	_, ok := w.active[coord]
	return ok
}

// Tick starts at most InitPerTick chunk initializations and presents at most
// CompletionsPerTick finished meshes. It never waits on a worker.
func (w *World) Tick() TickStats {
	defer profiling.Track("world.Tick")()
	var st TickStats

	for st.Initialized < w.settings.InitPerTick {
		coord, ok := w.streamer.Next()
		if !ok {
			break
		}
		c := w.store.Get(coord)
		if c == nil || !c.IsActive() || c.State() != StateEmpty {
			continue
		}
		if !w.pool.Submit("init "+coord.String(), func() { w.initChunk(c) }) {
			w.streamer.Enqueue(coord)
			break
		}
		st.Initialized++
	}

	for _, u := range w.completed.Drain(w.settings.CompletionsPerTick) {
		if w.applyCompletion(u) {
			st.Presented++
		} else {
			st.Discarded++
		}
	}

	st.PendingInit = w.streamer.Len()
	st.PendingCompletions = w.completed.Len()
	return st
}

func (w *World) applyCompletion(u MeshUpdate) bool {
	c := w.store.Get(u.Coord)
	if c == nil {
		return false
	}
	c.undelivered.Add(-1)
	if !c.IsActive() {
		c.meshStale.Store(true)
		return false
	}
	if u.Generation != c.generation.Load() {
		// No newer result is on its way, so the chunk was hidden while this
		// one was building.
		if c.undelivered.Load() == 0 && c.State() == StateReady {
			w.requestRebuild(c)
		}
		return false
	}
	w.presenter.PresentMesh(u.Coord, u.Mesh)
	return true
}

func (w *World) initChunk(c *Chunk) {
	if err := c.populate(w.gen); err != nil {
		w.log.Error("populate failed", "coord", c.coord, "error", err)
		return
	}
	if c.setState(StateReady, StateRebuilding) {
		w.rebuildLoop(c)
	}
}

// requestRebuild schedules a rebuild of c, or folds the request into the
// rebuild already running.
func (w *World) requestRebuild(c *Chunk) {
	c.rebuildRequested.Store(true)
	if c.setState(StateReady, StateRebuilding) {
		if !w.pool.Submit("rebuild "+c.coord.String(), func() { w.rebuildLoop(c) }) {
			c.state.Store(int32(StateReady))
		}
	}
}

// rebuildLoop runs while the caller holds the Rebuilding state and loops for
// as long as new requests arrive during a rebuild.
func (w *World) rebuildLoop(c *Chunk) {
	for {
		c.rebuildRequested.Store(false)
		w.rebuild(c)
		c.state.Store(int32(StateReady))
		if !c.rebuildRequested.Load() || !c.setState(StateReady, StateRebuilding) {
			return
		}
	}
}

func (w *World) rebuild(c *Chunk) {
	defer profiling.Track("world.rebuild")()
	if c.building.Add(1) > 1 {
		w.log.Error("overlapping rebuild", "coord", c.coord)
	}
	defer c.building.Add(-1)
	gen := c.generation.Add(1)
	touched := c.applyQueuedEdits()

	src := &chunkSource{world: w, grid: c.voxels.Load(), origin: c.Origin()}
	if err := c.builder.Build(src, w.reg); err != nil {
		w.log.Error("mesh build failed", "coord", c.coord, "error", err)
	} else {
		c.undelivered.Add(1)
		w.completed.Push(MeshUpdate{Coord: c.coord, Generation: gen, Mesh: c.builder.Snapshot()})
	}

	for _, n := range touched {
		if nc := w.store.Get(n); nc != nil && nc.Populated() {
			w.requestRebuild(nc)
		}
	}
}

// EditVoxel queues a block change at pos and schedules the owning chunk for
// a rebuild.
func (w *World) EditVoxel(pos BlockPos, id voxel.ID) error {
	if !w.gen.InWorld(pos.X, pos.Y, pos.Z) {
		return fmt.Errorf("edit %v: %w", pos, ErrOutOfWorldBounds)
	}
	if _, err := w.reg.Get(id); err != nil {
		return fmt.Errorf("edit %v: %w", pos, err)
	}
	coord := CoordFromBlock(pos.X, pos.Z, w.settings.ChunkWidth, w.settings.ChunkLength)
	c := w.store.Get(coord)
	if c == nil {
		return fmt.Errorf("edit %v in chunk %v: %w", pos, coord, ErrChunkNotResident)
	}
	if !c.Populated() {
		return fmt.Errorf("edit %v in chunk %v: %w", pos, coord, ErrNotYetPopulated)
	}
	c.QueueEdit(pos, id)
	w.requestRebuild(c)
	return nil
}

// VoxelAt returns the voxel at a world position from resident chunk data.
func (w *World) VoxelAt(pos BlockPos) (voxel.ID, error) {
	if !w.gen.InWorld(pos.X, pos.Y, pos.Z) {
		return voxel.Air, fmt.Errorf("voxel %v: %w", pos, ErrOutOfWorldBounds)
	}
	coord := CoordFromBlock(pos.X, pos.Z, w.settings.ChunkWidth, w.settings.ChunkLength)
	c := w.store.Get(coord)
	if c == nil {
		return voxel.Air, fmt.Errorf("voxel %v in chunk %v: %w", pos, coord, ErrChunkNotResident)
	}
	origin := c.Origin()
	return c.Voxel(pos.X-origin.X, pos.Y, pos.Z-origin.Z)
}

// IsSolid reports whether a solid block occupies the world-space position.
// Chunk data is used when populated, otherwise the generator is asked.
func (w *World) IsSolid(pos mgl32.Vec3) bool {
	p := BlockPosFromVec(pos)
	return w.reg.IsSolid(w.blockAt(p.X, p.Y, p.Z))
}

// ChunkAt returns the chunk containing a world-space position, or nil.
func (w *World) ChunkAt(pos mgl32.Vec3) *Chunk {
	return w.store.Get(CoordFromPosition(pos, w.settings.ChunkWidth, w.settings.ChunkLength))
}

// blockAt resolves any world position, treating positions outside the world
// as air and unpopulated chunks as freshly generated terrain.
func (w *World) blockAt(x, y, z int) voxel.ID {
	if !w.gen.InWorld(x, y, z) {
		return voxel.Air
	}
	coord := CoordFromBlock(x, z, w.settings.ChunkWidth, w.settings.ChunkLength)
	if c := w.store.Get(coord); c != nil {
		if g := c.voxels.Load(); g != nil {
			return g.at(mod(x, c.width), y, mod(z, c.length))
		}
	}
	return w.gen.Generate(x, y, z)
}

// GenerateSpawnArea places the observer at Spawn and synchronously populates
// and meshes the whole window around it using up to Workers goroutines.
func (w *World) GenerateSpawnArea(ctx context.Context) error {
	defer profiling.Track("world.GenerateSpawnArea")()
	w.OnObserverMoved(w.Spawn())

	var chunks []*Chunk
	for coord := range w.active {
		if c := w.store.Get(coord); c != nil && c.State() == StateEmpty {
			chunks = append(chunks, c)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.settings.Workers)
	for _, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return c.populate(w.gen)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generate spawn area: %w", err)
	}

	// Meshing waits for every chunk so borders see real neighbours.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(w.settings.Workers)
	for _, c := range chunks {
		if !c.setState(StateReady, StateRebuilding) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				c.state.Store(int32(StateReady))
				c.meshStale.Store(true)
				return err
			}
			w.rebuildLoop(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("mesh spawn area: %w", err)
	}

	presented := 0
	for w.completed.Len() > 0 {
		for _, u := range w.completed.Drain(w.completed.Len()) {
			if w.applyCompletion(u) {
				presented++
			}
		}
	}
	w.log.Info("spawn area ready", "observer", w.observer, "chunks", len(chunks), "meshes", presented)
	return nil
}

// Stats returns a snapshot of world counters.
func (w *World) Stats() Stats {
	st := Stats{
		Allocated:      w.store.Count(),
		Active:         len(w.active),
		PendingInit:    w.streamer.Len(),
		PendingMeshes:  w.completed.Len(),
		RunningWorkers: w.pool.Running(),
	}
	for _, c := range w.store.All() {
		if c.State() == StateReady {
			st.Ready++
		}
	}
	return st
}

// Wait blocks until all worker tasks have finished. Completions stay queued
// for the next Tick.
func (w *World) Wait() {
	w.pool.Wait()
}

// Close stops the worker pool after running tasks finish.
func (w *World) Close() {
	w.pool.StopAndWait()
	w.log.Info("world closed", "chunks", w.store.Count())
}

// chunkSource adapts a chunk snapshot to the mesh builder, resolving cells
// beyond the chunk edge through the world.
type chunkSource struct {
	world  *World
	grid   *voxelGrid
	origin BlockPos
}

func (s *chunkSource) Size() (int, int, int) {
	return s.grid.width, s.grid.height, s.grid.length
}

func (s *chunkSource) Block(x, y, z int) voxel.ID {
	return s.grid.at(x, y, z)
}

func (s *chunkSource) NeighborOccludes(x, y, z int) bool {
	return s.world.reg.Occludes(s.world.blockAt(s.origin.X+x, y, s.origin.Z+z))
}
