// Package logging wraps zerolog with the contextual fields this engine's
// components care about, following
// _examples/sambhavthakkar-QuantaraX/backend/internal/observability/logger.go's
// shape (a struct embedding a configured zerolog.Logger, With* methods
// returning a derived copy) adapted from session/peer/file context to
// chunk-position and worker-id context.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/leterax/voxelcore/pkg/voxel"
)

// Logger wraps zerolog for structured logging across the engine core.
type Logger struct {
	logger zerolog.Logger
}

// New creates a root Logger. output defaults to stderr so it doesn't
// collide with anything a host program writes to stdout.
func New(component string, level zerolog.Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(output).Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()

	return &Logger{logger: logger}
}

// WithChunk derives a Logger tagged with a chunk position.
func (l *Logger) WithChunk(position voxel.ChunkPosition) *Logger {
	return &Logger{
		logger: l.logger.With().
			Int32("chunk_x", position.X).
			Int32("chunk_y", position.Y).
			Int32("chunk_z", position.Z).
			Logger(),
	}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string) { l.logger.Debug().Msg(msg) }

// Info logs an info-level message.
func (l *Logger) Info(msg string) { l.logger.Info().Msg(msg) }

// Warn logs a warning-level message.
func (l *Logger) Warn(msg string) { l.logger.Warn().Msg(msg) }

// Error logs an error-level message with an attached error value.
func (l *Logger) Error(err error, msg string) { l.logger.Error().Err(err).Msg(msg) }

// ChunkGenerated logs a chunk having been produced by a generator.
func (l *Logger) ChunkGenerated(position voxel.ChunkPosition, byteSize int, elapsed time.Duration) {
	l.logger.Debug().
		Int32("chunk_x", position.X).
		Int32("chunk_y", position.Y).
		Int32("chunk_z", position.Z).
		Int("byte_size", byteSize).
		Dur("elapsed", elapsed).
		Msg("chunk generated")
}

// ChunkDiscarded logs a generator's EarlyDiscard skipping a position.
func (l *Logger) ChunkDiscarded(position voxel.ChunkPosition) {
	l.logger.Debug().
		Int32("chunk_x", position.X).
		Int32("chunk_y", position.Y).
		Int32("chunk_z", position.Z).
		Msg("chunk generation skipped by early discard")
}

// PoolStats logs a periodic snapshot of chunk-map load accounting.
func (l *Logger) PoolStats(numChunksLoaded, bytesChunksLoaded int) {
	l.logger.Info().
		Int("num_chunks_loaded", numChunksLoaded).
		Int("bytes_chunks_loaded", bytesChunksLoaded).
		Msg("chunk map stats")
}

// PoolStarted logs a background task pool coming up.
func (l *Logger) PoolStarted(numThreads int) {
	l.logger.Info().Int("num_threads", numThreads).Msg("starting background task pool")
}

// TaskPanicked logs a worker recovering from a panicking task and
// reports that a replacement worker goroutine is being spawned.
func (l *Logger) TaskPanicked(workerID int, recovered interface{}) {
	l.logger.Error().
		Int("worker_id", workerID).
		Interface("panic", recovered).
		Msg("background task panicked, replacing worker")
}
