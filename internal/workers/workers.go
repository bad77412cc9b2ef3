// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/imperial-command/internal/logger"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Start launches every worker in its own goroutine. Workers stop when ctx is
// done; use Wait to block until all of them have returned.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			w.logger.Debug().Str("worker", fmt.Sprintf("%T", worker)).Msg("worker started")
			worker.Run(ctx)
		}(worker)
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
