// Package chunkmap is the spatial hash from a chunk position to a live
// chunk handle, grounded on
// _examples/Leterax-go-voxels/pkg/game/chunk_manager.go's chunks map and
// chunksMutex, generalized from a network-received chunk cache to a
// position -> handle registry.
package chunkmap

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/leterax/voxelcore/pkg/voxel"
)

// Handle identifies one registered chunk entity. Opaque to callers,
// minted on Register; a uuid rather than a bare chunk pointer so
// handles stay valid identities even if the underlying Chunk value is
// replaced in place later.
type Handle = uuid.UUID

// Stats tracks aggregate load accounting, grounded on
// original_source's `ChunkStatistics` ECS resource (ecs/chunk_generator.rs):
// a cheap, purely observational counter updated on Register/Deregister.
type Stats struct {
	NumChunksLoaded   int
	BytesChunksLoaded int
}

// Map is a mutable mapping from ChunkPosition to a chunk entity handle,
// plus the handle -> Chunk side table. One live handle per registered
// position at any quiescent point. Safe for
// concurrent use: the tick thread and worker threads may call Get
// concurrently with Register/Deregister, guarded by a single RWMutex
// mirroring chunk_manager.go's chunksMutex.
type Map[V voxel.Voxel] struct {
	mu        sync.RWMutex
	positions map[voxel.ChunkPosition]Handle
	chunks    map[Handle]voxel.Chunk[V]

	recent *lru.Cache[voxel.ChunkPosition, Handle]

	stats Stats

	onAdded   func(voxel.ChunkPosition, Handle)
	onRemoved func(voxel.ChunkPosition, Handle)
}

// New creates an empty Map. recentCapacity bounds the size of the
// RecentlyAccessed debug-overlay view; 0 disables it.
func New[V voxel.Voxel](recentCapacity int) *Map[V] {
	m := &Map[V]{
		positions: make(map[voxel.ChunkPosition]Handle),
		chunks:    make(map[Handle]voxel.Chunk[V]),
	}
	if recentCapacity > 0 {
		cache, err := lru.New[voxel.ChunkPosition, Handle](recentCapacity)
		if err != nil {
			panic(err)
		}
		m.recent = cache
	}
	return m
}

// OnChunkAdded registers a callback fired after a chunk is registered.
// External indexers (debug overlays, the demo command's stats logger)
// hook in here.
func (m *Map[V]) OnChunkAdded(f func(voxel.ChunkPosition, Handle)) { m.onAdded = f }

// OnChunkRemoved registers a callback fired after a chunk is deregistered.
func (m *Map[V]) OnChunkRemoved(f func(voxel.ChunkPosition, Handle)) { m.onRemoved = f }

// Register installs chunk at position, replacing any existing handle
// there, and returns the new handle.
func (m *Map[V]) Register(position voxel.ChunkPosition, chunk voxel.Chunk[V]) Handle {
	handle := uuid.New()

	m.mu.Lock()
	if old, ok := m.positions[position]; ok {
		m.stats.BytesChunksLoaded -= m.chunks[old].ByteSize()
		delete(m.chunks, old)
	} else {
		m.stats.NumChunksLoaded++
	}
	m.stats.BytesChunksLoaded += chunk.ByteSize()
	m.positions[position] = handle
	m.chunks[handle] = chunk
	if m.recent != nil {
		m.recent.Add(position, handle)
	}
	m.mu.Unlock()

	if m.onAdded != nil {
		m.onAdded(position, handle)
	}
	return handle
}

// Deregister removes the chunk at position, if any.
func (m *Map[V]) Deregister(position voxel.ChunkPosition) {
	m.mu.Lock()
	handle, ok := m.positions[position]
	if !ok {
		m.mu.Unlock()
		return
	}
	chunk := m.chunks[handle]
	delete(m.positions, position)
	delete(m.chunks, handle)
	m.stats.NumChunksLoaded--
	m.stats.BytesChunksLoaded -= chunk.ByteSize()
	m.mu.Unlock()

	if m.onRemoved != nil {
		m.onRemoved(position, handle)
	}
}

// Get returns the chunk registered at position, if any.
func (m *Map[V]) Get(position voxel.ChunkPosition) (voxel.Chunk[V], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	handle, ok := m.positions[position]
	if !ok {
		return voxel.Chunk[V]{}, false
	}
	return m.chunks[handle], true
}

// Contains reports whether a chunk is registered at position.
func (m *Map[V]) Contains(position voxel.ChunkPosition) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.positions[position]
	return ok
}

// Stats returns a snapshot of the load accounting counters.
func (m *Map[V]) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Positions returns every currently registered chunk position, in no
// particular order. Unlike RecentlyAccessed this is a complete,
// unbounded snapshot; used by callers that need to scan the whole map
// (e.g. a distant-chunk eviction policy), never by debug overlays.
func (m *Map[V]) Positions() []voxel.ChunkPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]voxel.ChunkPosition, 0, len(m.positions))
	for p := range m.positions {
		out = append(out, p)
	}
	return out
}

// RecentlyAccessed returns the positions most recently registered or
// re-registered, newest first, up to the configured capacity. Read-side
// convenience for debug overlays; never used to decide authoritative
// membership (only Get/Contains do that).
func (m *Map[V]) RecentlyAccessed() []voxel.ChunkPosition {
	if m.recent == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := m.recent.Keys()
	out := make([]voxel.ChunkPosition, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}
