// Package tasks is the background task pool: a fixed set of worker
// goroutines draining a small number of per-task-type queues, each with
// its own queue depth and worker quota. Grounded on
// original_source/sandvox/src/ecs/background_tasks.rs's BackgroundTaskPool
// (Condvar-guarded state, round-robin worker scan, command-buffer
// deferred world modifications), adapted from bevy_ecs Commands/TypeId
// dispatch to a plain reflect.Type-keyed registry since Go already has
// Task as a first-class interface value (no Any-downcast needed).
package tasks

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"github.com/leterax/voxelcore/internal/logging"
)

// Task is one unit of background work, run on a worker goroutine. Run
// must not mutate shared state directly; anything it wants reflected on
// the owning thread is queued onto buffer, applied later via
// Pool.ApplyModifications.
type Task interface {
	Run(buffer *CommandBuffer)
}

// CommandBuffer accumulates deferred mutations produced by a Task
// running off-thread, for later application on the owning thread.
type CommandBuffer struct {
	mods []func()
}

// Defer queues mod to run later, on the thread that calls
// Pool.ApplyModifications.
func (b *CommandBuffer) Defer(mod func()) {
	b.mods = append(b.mods, mod)
}

func (b *CommandBuffer) appendFrom(other *CommandBuffer) {
	b.mods = append(b.mods, other.mods...)
	other.mods = other.mods[:0]
}

func (b *CommandBuffer) drain() []func() {
	mods := b.mods
	b.mods = nil
	return mods
}

// QueueConfig configures one task type's queue. Zero values mean
// "derive from the pool's thread count", mirroring
// default_queue_size(num_threads) in the original.
type QueueConfig struct {
	QueueSize  int
	NumThreads int
}

type taskQueue struct {
	queue      []Task
	queueSize  int
	numThreads int
	numQueued  int
	numActive  int
}

// Pool runs a fixed number of worker goroutines pulling from a small set
// of named task queues, one per concrete Task type, round-robin across
// queues so no single type can starve the others.
type Pool struct {
	mu        sync.Mutex
	cond      *sync.Cond
	active    bool
	queues    []*taskQueue
	byType    map[reflect.Type]int
	modBuffer CommandBuffer

	defaultThreads int
	logger         *logging.Logger
}

// New starts a Pool with numThreads worker goroutines. numThreads must
// be positive; callers typically pass runtime.GOMAXPROCS(0). logger may
// be nil, in which case a silent one is used.
func New(numThreads int, logger *logging.Logger) *Pool {
	if numThreads < 1 {
		numThreads = 1
	}
	if logger == nil {
		logger = logging.New("tasks", zerolog.Disabled, nil)
	}
	p := &Pool{
		active:         true,
		byType:         make(map[reflect.Type]int),
		defaultThreads: numThreads,
		logger:         logger,
	}
	p.cond = sync.NewCond(&p.mu)

	p.logger.PoolStarted(numThreads)
	for i := 0; i < numThreads; i++ {
		go p.workerLoop(i)
	}
	return p
}

// ConfigureQueue sets (or resets) the queue depth and worker quota for
// the concrete Task type that sample belongs to. sample is never run;
// its only purpose is to identify the type. Calling this after tasks of
// that type have already been pushed reconfigures the existing queue in
// place (the original's Entry::Occupied branch).
func (p *Pool) ConfigureQueue(sample Task, config QueueConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	numThreads := config.NumThreads
	if numThreads <= 0 || numThreads > p.defaultThreads {
		numThreads = p.defaultThreads
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize(numThreads)
	}

	t := reflect.TypeOf(sample)
	if idx, ok := p.byType[t]; ok {
		q := p.queues[idx]
		q.numThreads = numThreads
		q.queueSize = queueSize
		return
	}

	p.queues = append(p.queues, &taskQueue{queueSize: queueSize, numThreads: numThreads})
	p.byType[t] = len(p.queues) - 1
}

func defaultQueueSize(numThreads int) int { return numThreads * 2 }

// PushTasks enqueues tasks, stopping at the first one that would exceed
// the queue's configured depth (backpressure: at most the queue's free
// slots are accepted and the remainder is dropped — PushTasks reports
// how many it actually queued so callers can retry or discard). After
// Close it queues nothing and returns 0. All tasks must share the same concrete type; the
// queue is selected, and lazily created with default sizing, from the
// first element's type.
func (p *Pool) PushTasks(tasks []Task) (queued int) {
	if len(tasks) == 0 {
		return 0
	}

	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return 0
	}
	t := reflect.TypeOf(tasks[0])
	idx, ok := p.byType[t]
	if !ok {
		p.queues = append(p.queues, &taskQueue{
			queueSize:  defaultQueueSize(p.defaultThreads),
			numThreads: p.defaultThreads,
		})
		idx = len(p.queues) - 1
		p.byType[t] = idx
	}
	q := p.queues[idx]

	numFree := q.queueSize - q.numQueued
	if numFree <= 0 {
		p.mu.Unlock()
		return 0
	}
	if numFree > len(tasks) {
		numFree = len(tasks)
	}
	q.queue = append(q.queue, tasks[:numFree]...)
	q.numQueued += numFree
	p.mu.Unlock()

	p.cond.Broadcast()
	return numFree
}

// ApplyModifications drains the modifications workers have deferred so
// far and runs apply on each, on the calling goroutine. Intended to be
// called once per tick from the owning thread, mirroring
// apply_background_modifications.
func (p *Pool) ApplyModifications(apply func(func())) {
	p.mu.Lock()
	mods := p.modBuffer.drain()
	p.mu.Unlock()

	for _, mod := range mods {
		apply(mod)
	}
}

// Close stops accepting new work and wakes every blocked worker so they
// can exit. It does not wait for in-flight tasks to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *Pool) workerLoop(id int) {
	var local CommandBuffer
	cursor := 0

	for {
		task, queueIdx := p.nextTask(&cursor, &local)
		if task == nil {
			return
		}

		ok := p.runTask(id, task, &local)

		p.mu.Lock()
		p.queues[queueIdx].numActive--
		p.mu.Unlock()

		if !ok {
			// task panicked: this goroutine is retiring, a
			// replacement has already been spawned in its place.
			// Wake parked workers: the replacement may have found
			// this queue at its quota before the slot was freed.
			p.cond.Broadcast()
			return
		}
	}
}

// nextTask blocks until a task is available on some queue or the pool
// is closed, scanning queues round-robin starting at *cursor so no
// single task type can starve the others (the original's "scan from
// task_id+1" cursor). It also folds in local's deferred modifications
// from the previous task, under the same lock, each time it looks for
// more work.
func (p *Pool) nextTask(cursor *int, local *CommandBuffer) (Task, int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.modBuffer.appendFrom(local)

	for {
		if !p.active {
			return nil, -1
		}

		n := len(p.queues)
		for i := 0; i < n; i++ {
			qi := (*cursor + i) % n
			q := p.queues[qi]
			if q.numQueued > 0 && q.numActive < q.numThreads {
				q.numQueued--
				q.numActive++
				task := q.queue[0]
				q.queue = q.queue[1:]
				*cursor = (qi + 1) % n
				return task, qi
			}
		}

		// n == 0 falls straight through to waiting: no queue exists
		// yet for any task type.
		p.cond.Wait()
	}
}

// runTask isolates the panic-recovery boundary: a task that panics is
// logged and dropped rather than taking the worker goroutine down with
// it. It reports false when it recovered a panic, telling the caller to
// retire this goroutine; a replacement is spawned here so the pool's
// worker count never quietly shrinks.
func (p *Pool) runTask(id int, task Task, buffer *CommandBuffer) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			ok = false
			p.logger.TaskPanicked(id, r)
			go p.workerLoop(id)
		}
	}()
	task.Run(buffer)
	return
}
