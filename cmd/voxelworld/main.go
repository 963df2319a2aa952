package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"voxelworld/internal/config"
	"voxelworld/internal/physics"
	"voxelworld/internal/profiling"
	"voxelworld/internal/registry"
	"voxelworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "path to a JSON config file")
	flag.IntVar(&cfg.World.ViewDistance, "view-distance", cfg.World.ViewDistance, "active window radius in chunks")
	flag.IntVar(&cfg.World.Workers, "workers", cfg.World.Workers, "chunk worker goroutines")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "scheduler ticks per second")
	flag.Int64Var(&cfg.Gen.Seed, "seed", cfg.Gen.Seed, "world seed")
	flag.StringVar(&cfg.Gen.Biome, "biome", cfg.Gen.Biome, "biome file name under <assets>/biomes")
	flag.StringVar(&cfg.Gen.Assets, "assets", cfg.Gen.Assets, "asset directory or go-getter source")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	speed := flag.Float64("speed", 4, "observer walking speed in blocks per second")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	reg, biome, cleanup, err := loadAssets(cfg.Gen, log)
	if err != nil {
		log.Error("load assets", "error", err)
		os.Exit(1)
	}
	closer.Bind(cleanup)

	presenter := newLogPresenter(log)
	w, err := world.New(world.Options{
		Settings:  cfg.World,
		Seed:      cfg.Gen.Seed,
		Biome:     biome,
		Registry:  reg,
		Presenter: presenter,
		Logger:    log,
	})
	if err != nil {
		log.Error("create world", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
		w.Close()
		presenter.summary()
	})

	go func() {
		err := run(ctx, w, cfg.TickRate, *ticks, float32(*speed), log)
		close(done)
		if err != nil && ctx.Err() == nil {
			log.Error("run", "error", err)
			closer.Exit(1)
		}
		closer.Close()
	}()
	closer.Hold()
}

const eyeHeight = 1.6

// run walks the observer in a slow spiral around spawn, digging the block
// under its feet every few seconds, and ticks the world at the configured rate.
func run(ctx context.Context, w *world.World, tickRate, maxTicks int, speed float32, log *slog.Logger) error {
	start := time.Now()
	if err := w.GenerateSpawnArea(ctx); err != nil {
		return err
	}
	log.Info("spawn generated", "took", time.Since(start), "stats", w.Stats())

	limiter := rate.NewLimiter(rate.Limit(max(tickRate, 1)), 1)
	spawn := w.Spawn()
	dt := 1 / float32(max(tickRate, 1))
	var angle float32
	radius := float32(0)

	for tick := 1; maxTicks == 0 || tick <= maxTicks; tick++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		profiling.ResetFrame()

		radius += speed * dt * 0.25
		if radius > 0 {
			angle += speed * dt / radius
		}
		pos := spawn.Add(mgl32.Vec3{
			radius * float32(math.Cos(float64(angle))),
			0,
			radius * float32(math.Sin(float64(angle))),
		})
		pos[1] = physics.FindGroundLevel(pos.X(), pos.Z(), float32(w.Settings().ChunkHeight-1), w) + eyeHeight
		if w.OnObserverMoved(pos) {
			log.Debug("observer entered chunk", "chunk", w.Observer(), "active", w.ActiveChunks())
		}

		if tick%(3*max(tickRate, 1)) == 0 {
			dig(w, pos, log)
		}

		st := w.Tick()
		if tick%max(tickRate, 1) == 0 {
			log.Info("tick",
				"n", tick,
				"observer", w.Observer(),
				"initialized", st.Initialized,
				"presented", st.Presented,
				"discarded", st.Discarded,
				"pending_init", st.PendingInit,
				"pending_meshes", st.PendingCompletions,
				"top", profiling.TopN(3))
		}
	}
	return nil
}

// dig removes the block the observer is standing on.
func dig(w *world.World, eye mgl32.Vec3, log *slog.Logger) {
	hit := physics.Raycast(eye, mgl32.Vec3{0, -1, 0}, physics.MinReachDistance, physics.MaxReachDistance, w)
	if !hit.Hit {
		return
	}
	pos := world.BlockPos{X: hit.HitPosition[0], Y: hit.HitPosition[1], Z: hit.HitPosition[2]}
	if err := w.EditVoxel(pos, registry.BlockAir); err != nil {
		log.Debug("dig rejected", "pos", pos, "error", err)
		return
	}
	log.Debug("dig", "pos", pos, "distance", hit.Distance)
}
