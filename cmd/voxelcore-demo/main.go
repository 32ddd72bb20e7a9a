// Command voxelcore-demo wires ChunkMap, ChunkLoader, the terrain
// Generator, the background task Pool and GreedyMesher into a headless
// tick loop: a synthetic viewer orbits the origin, chunks load in and
// out of its radius, and periodic stats are logged. Grounded on
// _examples/Leterax-go-voxels/cmd/voxels/main.go's structure (flag
// parsing, a generated test world, a stats-printing loop) generalized
// from a GLFW render loop to a headless one, with cobra replacing bare
// `flag`.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leterax/voxelcore/internal/config"
	"github.com/leterax/voxelcore/internal/logging"
	"github.com/leterax/voxelcore/pkg/chunkloader"
	"github.com/leterax/voxelcore/pkg/chunkmap"
	"github.com/leterax/voxelcore/pkg/mesh"
	"github.com/leterax/voxelcore/pkg/tasks"
	"github.com/leterax/voxelcore/pkg/terrain"
	"github.com/leterax/voxelcore/pkg/voxel"
)

func main() {
	var configPath string
	var logLevel string

	root := &cobra.Command{
		Use:   "voxelcore-demo",
		Short: "Drives the chunk map, loader, generator, task pool and mesher in a headless tick loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, level)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (optional)")
	root.Flags().StringVar(&logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, level zerolog.Level) error {
	logger := logging.New("voxelcore-demo", level, os.Stderr)

	numThreads := cfg.NumWorkerThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}

	shape := voxel.NewMortonShape(cfg.ChunkSideLength)
	generator := terrain.NewGenerator(cfg.Seed, logger)
	chunks := chunkmap.New[terrain.BlockType](cfg.RecentlyAccessedN)
	loader := chunkloader.New(cfg.LoadRadiusChunks, cfg.LoadRadiusChunks, cfg.LoadRadiusChunks)
	pool := tasks.New(numThreads, logger)
	defer pool.Close()

	chunks.OnChunkAdded(func(position voxel.ChunkPosition, _ chunkmap.Handle) {
		logger.WithChunk(position).Debug("chunk registered")
	})
	chunks.OnChunkRemoved(func(position voxel.ChunkPosition, _ chunkmap.Handle) {
		logger.WithChunk(position).Debug("chunk dropped")
	})

	group, ctx := errgroup.WithContext(ctx)
	var loaderState chunkloader.State

	group.Go(func() error {
		return tickLoop(ctx, cfg, shape, generator, chunks, loader, &loaderState, pool, logger)
	})

	group.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("shutting down")
	return nil
}

func tickLoop(
	ctx context.Context,
	cfg config.Config,
	shape voxel.Shape,
	generator *terrain.Generator,
	chunks *chunkmap.Map[terrain.BlockType],
	loader chunkloader.Loader,
	loaderState *chunkloader.State,
	pool *tasks.Pool,
	logger *logging.Logger,
) error {
	tick := time.NewTicker(cfg.TickInterval)
	defer tick.Stop()
	stats := time.NewTicker(cfg.StatsInterval)
	defer stats.Stop()

	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-stats.C:
			s := chunks.Stats()
			logger.PoolStats(s.NumChunksLoaded, s.BytesChunksLoaded)

		case <-tick.C:
			viewer := orbitPosition(time.Since(start), float64(cfg.ChunkSideLength))

			pool.ApplyModifications(func(mod func()) { mod() })

			wanted := loader.Update(loaderState, viewer, cfg.ChunkSideLength, chunks.Contains)
			if len(wanted) > 0 {
				queueGeneration(pool, generator, shape, chunks, wanted)
			}

			viewerChunk := voxel.WorldToChunkPosition(viewer[0], viewer[1], viewer[2], cfg.ChunkSideLength)
			dropDistantChunks(chunks, viewerChunk, loader.Radius, cfg.DropRadiusFactor)
		}
	}
}

// orbitPosition is the synthetic viewer path: a slow circle around the
// origin at a fixed radius, so the loader has somewhere to move.
func orbitPosition(elapsed time.Duration, chunkSideLength float64) [3]float64 {
	const period = 20 * time.Second
	angle := 2 * math.Pi * elapsed.Seconds() / period.Seconds()
	radius := chunkSideLength * 3
	return [3]float64{radius * math.Cos(angle), 0, radius * math.Sin(angle)}
}

type genTask struct {
	position  voxel.ChunkPosition
	shape     voxel.Shape
	generator *terrain.Generator
	chunks    *chunkmap.Map[terrain.BlockType]
}

func (t genTask) Run(buffer *tasks.CommandBuffer) {
	chunk, ok := t.generator.GenerateChunk(t.position, t.shape)
	if !ok {
		return
	}

	sink := &quadCountSink{}
	mesher := mesh.New[terrain.BlockType](t.shape.SideLength())
	mesher.Mesh(chunk, terrain.Data{}, sink)

	buffer.Defer(func() {
		t.chunks.Register(t.position, chunk)
	})
}

type quadCountSink struct {
	count int
}

func (s *quadCountSink) PushQuad(face mesh.BlockFace, quad mesh.Quad, v terrain.BlockType, textureID voxel.TextureID) {
	s.count++
}

func queueGeneration(pool *tasks.Pool, generator *terrain.Generator, shape voxel.Shape, chunks *chunkmap.Map[terrain.BlockType], positions []voxel.ChunkPosition) {
	batch := make([]tasks.Task, 0, len(positions))
	for _, p := range positions {
		if generator.EarlyDiscard(p, shape) {
			continue
		}
		batch = append(batch, genTask{position: p, shape: shape, generator: generator, chunks: chunks})
	}
	if len(batch) == 0 {
		return
	}
	pool.PushTasks(batch)
}

// dropDistantChunks removes chunks outside dropFactor times the load
// radius from viewerChunk, grounded on
// _examples/Leterax-go-voxels/pkg/game/chunk_manager.go's
// RemoveDistantChunks, generalized from a scalar render distance to a
// per-axis radius and a tunable drop-distance multiplier.
func dropDistantChunks(chunks *chunkmap.Map[terrain.BlockType], viewerChunk, radius voxel.ChunkPosition, dropFactor float64) {
	maxDX := float64(radius.X) * dropFactor
	maxDY := float64(radius.Y) * dropFactor
	maxDZ := float64(radius.Z) * dropFactor

	for _, position := range chunks.Positions() {
		dx := float64(position.X - viewerChunk.X)
		dy := float64(position.Y - viewerChunk.Y)
		dz := float64(position.Z - viewerChunk.Z)
		if math.Abs(dx) > maxDX || math.Abs(dy) > maxDY || math.Abs(dz) > maxDZ {
			chunks.Deregister(position)
		}
	}
}
