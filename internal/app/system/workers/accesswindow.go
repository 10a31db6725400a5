// internal/app/system/workers/accesswindow.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/reelhub/internal/app/store/employees"
	"go.uber.org/zap"
)

// AccessWindowSweeper is a background worker that clears temporary admin
// access windows once they have elapsed. An elapsed window already denies
// privilege on every request; the sweeper only removes the stale grant
// from the employee records.
type AccessWindowSweeper struct {
	employees *employeestore.Store
	log       *zap.Logger
	interval  time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewAccessWindowSweeper creates a sweeper that runs every interval.
func NewAccessWindowSweeper(employees *employeestore.Store, logger *zap.Logger, interval time.Duration) *AccessWindowSweeper {
	return &AccessWindowSweeper{
		employees: employees,
		log:       logger,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *AccessWindowSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("access window sweeper started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AccessWindowSweeper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("access window sweeper stopped")
}

func (w *AccessWindowSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *AccessWindowSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.employees.ClearElapsedAccessWindows(ctx, time.Now())
	if err != nil {
		w.log.Error("failed to clear elapsed access windows", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("cleared elapsed access windows", zap.Int64("count", count))
	}
}
