package main

import (
	"log/slog"

	"voxelworld/internal/meshing"
	"voxelworld/internal/world"
)

// logPresenter stands in for a renderer: it keeps per-chunk face counts and
// logs mesh traffic at debug level.
type logPresenter struct {
	log     *slog.Logger
	faces   map[world.ChunkCoord]int
	visible map[world.ChunkCoord]bool
	meshes  int
}

func newLogPresenter(log *slog.Logger) *logPresenter {
	return &logPresenter{
		log:     log.With("component", "presenter"),
		faces:   make(map[world.ChunkCoord]int),
		visible: make(map[world.ChunkCoord]bool),
	}
}

func (p *logPresenter) PresentMesh(coord world.ChunkCoord, mesh *meshing.Mesh) {
	p.faces[coord] = mesh.FaceCount()
	p.meshes++
	p.log.Debug("mesh", "chunk", coord, "faces", mesh.FaceCount(), "triangles", mesh.TriangleCount())
}

func (p *logPresenter) SetChunkActive(coord world.ChunkCoord, active bool) {
	p.visible[coord] = active
}

func (p *logPresenter) summary() {
	visible, faces := 0, 0
	for coord, v := range p.visible {
		if v {
			visible++
			faces += p.faces[coord]
		}
	}
	p.log.Info("presenter summary", "meshes", p.meshes, "chunks", len(p.faces), "visible", visible, "visible_faces", faces)
}
