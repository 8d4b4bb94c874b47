package service

import (
	"context"
	"log/slog"
)

// Dispatcher is the slice of DispatchService the worker needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, campaignID int) DispatchResult
}

// Worker drains campaign dispatch jobs from a channel, one at a time.
// Dispatch already fans out per batch internally, so running jobs
// sequentially here keeps a predictable ceiling on transport pressure.
type Worker struct {
	Dispatcher Dispatcher
	JobChan    <-chan int
	Log        *slog.Logger
}

func NewWorker(d Dispatcher, jobChan <-chan int, log *slog.Logger) *Worker {
	return &Worker{Dispatcher: d, JobChan: jobChan, Log: log}
}

// Start processes jobs until the channel closes.
func (w *Worker) Start(ctx context.Context) {
	for campaignID := range w.JobChan {
		result := w.Dispatcher.Dispatch(ctx, campaignID)
		if result.Success {
			w.Log.Info("campaign dispatched",
				"campaign_id", campaignID,
				"sent", result.SentCount,
				"total", result.TotalSubscribers,
				"failed", len(result.Errors),
			)
			continue
		}
		w.Log.Error("campaign dispatch failed",
			"campaign_id", campaignID,
			"error", result.Error,
		)
	}
}
