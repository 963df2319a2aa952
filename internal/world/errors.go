package world

import "errors"

var (
	// ErrOutOfWorldBounds is returned for positions outside the addressable world.
	ErrOutOfWorldBounds = errors.New("position outside world bounds")
	// ErrOutsideChunk is returned for local coordinates outside a single chunk.
	ErrOutsideChunk = errors.New("position outside chunk")
	// ErrChunkNotResident is returned when the chunk for a position is not in the active set.
	ErrChunkNotResident = errors.New("chunk not resident")
	// ErrNotYetPopulated is returned when a chunk has no voxel data yet.
	ErrNotYetPopulated = errors.New("chunk not yet populated")
)
