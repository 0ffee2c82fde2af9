package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-ppm-raytracer/pkg/color"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Index int // Emission index; 0 is the top row
}

// RowResult contains the shaded pixels of one row
type RowResult struct {
	Index  int
	Pixels []color.Color
	Hits   []bool
}

// WorkerPool manages parallel row rendering.
// Rows are independent: workers only read the scene.
type WorkerPool struct {
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	group       *errgroup.Group
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxRows bounds the queues so neither submitting nor reporting ever blocks.
func NewWorkerPool(raytracer *Raytracer, maxRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		raytracer:   raytracer,
		taskQueue:   make(chan RowTask, maxRows),
		resultQueue: make(chan RowResult, maxRows),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers. Cancelling ctx stops them after their current row.
func (wp *WorkerPool) Start(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	wp.group = group
	for i := 0; i < wp.numWorkers; i++ {
		group.Go(func() error {
			return wp.run(ctx)
		})
	}
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// CloseTasks signals that no more tasks will be submitted
func (wp *WorkerPool) CloseTasks() {
	close(wp.taskQueue)
}

// Results returns the channel of completed rows, in completion order.
// It is closed once Wait returns.
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// Wait blocks until every worker exits and returns the first worker error
func (wp *WorkerPool) Wait() error {
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) error {
	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}

		pixels, hits := wp.raytracer.renderRow(task.Index)
		wp.resultQueue <- RowResult{
			Index:  task.Index,
			Pixels: pixels,
			Hits:   hits,
		}
	}
	return nil
}
