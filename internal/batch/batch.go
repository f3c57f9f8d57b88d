// Package batch runs predictions over a set of case files with a small worker
// pool, persisting each result to the case store.
package batch

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/icdkit/icdgraph/internal/lib"
	"github.com/icdkit/icdgraph/internal/predict"
	"github.com/icdkit/icdgraph/internal/store"
)

type Config struct {
	WorkerCooldown lib.Duration   `json:"workerCooldown"`
	WorkerCount    uint           `json:"workerCount"`
	Model          string         `json:"model"`
	Params         predict.Params `json:"params"`
}

// Runner feeds queued case files to workers. Set in NewRunner; queue and
// bookkeeping are reset at the start of each Run.
type Runner struct {
	cfg       Config
	predictor predict.Predictor
	cases     *store.Store

	queue     *lib.Queue
	cancel    chan struct{}
	wg        *sync.WaitGroup
	succeeded atomic.Int64
	failed    atomic.Int64
}

func NewRunner(cfg Config, predictor predict.Predictor, cases *store.Store) *Runner {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 3
	}
	return &Runner{
		cfg:       cfg,
		predictor: predictor,
		cases:     cases,
	}
}

// Run enqueues the given case files and starts the workers. Duplicate paths
// are enqueued once. It returns immediately; use Wait to block until the queue
// is drained.
func (r *Runner) Run(ctx context.Context, paths []string) {
	r.queue = lib.NewQueue()
	r.cancel = make(chan struct{})
	r.wg = &sync.WaitGroup{}
	r.succeeded.Store(0)
	r.failed.Store(0)

	seen := lib.NewSet()
	for _, path := range paths {
		if seen.Contains(path) {
			continue
		}
		seen.Add(path)
		r.queue.Enqueue(path)
	}

	for i := uint(1); i <= r.cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}
}

// Wait blocks until all workers have exited and reports how many cases
// succeeded and failed.
func (r *Runner) Wait() (succeeded, failed int64) {
	r.wg.Wait()
	return r.succeeded.Load(), r.failed.Load()
}

// Cancel stops the workers once they're finished with their current case, and
// blocks until all the goroutines are exited.
func (r *Runner) Cancel() {
	close(r.cancel)
	r.wg.Wait()
}

func (r *Runner) worker(ctx context.Context, id uint) {
	defer r.wg.Done()

	for {
		select {
		case <-r.cancel:
			log.Printf("{%d} Canceled\n", id)
			return
		case <-ctx.Done():
			return
		default:
		}

		path := r.queue.Dequeue()
		if path == "" {
			// Queue drained; a batch never refills it.
			return
		}

		r.workOnCase(ctx, id, path)
		time.Sleep(r.cfg.WorkerCooldown.Duration)
	}
}

func (r *Runner) workOnCase(ctx context.Context, id uint, path string) {
	log.Printf("{%d} Processing case file %s\n", id, path)

	text, err := ExtractText(path)
	if err != nil {
		log.Printf("{%d} Could not extract text, err: %v\n", id, err)
		r.failed.Add(1)
		return
	}

	result, err := r.predictor.Predict(ctx, text, r.cfg.Model, r.cfg.Params)
	if err != nil {
		log.Printf("{%d} Prediction failed, err: %v\n", id, err)
		r.failed.Add(1)
		return
	}

	title := filepath.Base(path)
	if _, err := r.cases.SaveCase(title, text, result); err != nil {
		log.Printf("{%d} Could not save case, err: %v\n", id, err)
		r.failed.Add(1)
		return
	}

	log.Printf("{%d} Saved case %s with %d predictions\n", id, title, len(result.ICDPredictions))
	r.succeeded.Add(1)
}
