// Package shutdownqueue collects cleanup tasks during startup and drains
// them in LIFO order when the process shuts down.
//
// Register tasks with Add as resources come up, then at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	_ = shutdownqueue.Shutdown(ctx)
//
// Shutdown runs each task once, recovers panics, and is safe to call
// more than once; errors are aggregated with errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown step. It should honor ctx and return an error when
// it cannot finish in time.
type Task func(ctx context.Context) error

var (
	mu      sync.Mutex
	tasks   []Task
	drained bool
)

// Add registers a task to run on Shutdown. Registration order is
// preserved; Shutdown runs tasks newest-first. Nil tasks and tasks
// added after Shutdown started are dropped.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if drained {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains all registered tasks in LIFO order. If ctx expires
// mid-drain, remaining tasks are skipped and the context error is
// included in the aggregate.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	pending := tasks
	tasks = nil
	drained = true
	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		}

		err := runOne(ctx, pending[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runOne(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
