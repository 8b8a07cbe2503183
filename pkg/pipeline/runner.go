package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/parea-ai/wikichat-parea/internal/model"
)

// Runner fans a stream of article metadata out to a pool of pipeline
// workers. MaxItems caps how many articles a run will accept; zero means
// unlimited.
type Runner struct {
	pipeline *Pipeline
	queue    chan model.ArticleMetadata
	workers  int
	maxItems int

	mu       sync.Mutex
	accepted int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type RunnerConfig struct {
	Workers   int
	QueueSize int
	MaxItems  int
}

func NewRunner(p *Pipeline, config RunnerConfig) *Runner {
	if config.Workers == 0 {
		config.Workers = 5
	}
	if config.QueueSize == 0 {
		config.QueueSize = 100
	}

	return &Runner{
		pipeline: p,
		queue:    make(chan model.ArticleMetadata, config.QueueSize),
		workers:  config.Workers,
		maxItems: config.MaxItems,
	}
}

func (r *Runner) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case meta, ok := <-r.queue:
					if !ok {
						return
					}
					if err := r.pipeline.Process(workerCtx, meta); err != nil {
						slog.Error("error processing article", "url", meta.URL, "error", err)
					}
				}
			}
		}()
	}
}

// Submit queues an article for processing. It returns false once MaxItems
// articles have been accepted; callers should stop submitting.
func (r *Runner) Submit(meta model.ArticleMetadata) bool {
	r.mu.Lock()
	if r.maxItems > 0 && r.accepted >= r.maxItems {
		r.mu.Unlock()
		return false
	}
	r.accepted++
	r.mu.Unlock()

	r.queue <- meta
	return true
}

// Stop drains the queue and waits for in-flight articles to finish.
func (r *Runner) Stop() {
	close(r.queue)
	r.wg.Wait()
	if r.cancel != nil {
		r.cancel()
	}
}
