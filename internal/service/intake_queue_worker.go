package service

import (
	"context"
	"log"
	"sync"
	"time"

	"aansluitintake/internal/port"
)

// IntakeQueueConfig holds settings for the intake queue worker.
type IntakeQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// IntakeQueueWorker polls for queued intake jobs and dispatches them.
type IntakeQueueWorker struct {
	jobRepo port.IntakeJobRepository
	intake  IntakeService
	cfg     IntakeQueueConfig
	wg      sync.WaitGroup
}

// NewIntakeQueueWorker creates a new IntakeQueueWorker.
func NewIntakeQueueWorker(jobRepo port.IntakeJobRepository, intake IntakeService, cfg IntakeQueueConfig) *IntakeQueueWorker {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &IntakeQueueWorker{
		jobRepo: jobRepo,
		intake:  intake,
		cfg:     cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished; remaining queued jobs are marked skipped so
// nothing is silently reprocessed on restart.
func (w *IntakeQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("intakeQueueWorker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("intakeQueueWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			w.skipRemaining()
			log.Printf("intakeQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll; exit on the next select.
					continue
				}
				log.Printf("intakeQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Fresh context independent of the poll context so
					// in-flight jobs complete even during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					log.Printf("intakeQueueWorker: dispatching job %s (%s)", job.ID, job.FileName)
					w.intake.ProcessJob(jobCtx, &job)
				}()
			}
		}
	}
}

func (w *IntakeQueueWorker) skipRemaining() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	skipped, err := w.jobRepo.SkipQueued(ctx)
	if err != nil {
		log.Printf("intakeQueueWorker: SkipQueued error: %v", err)
		return
	}
	if skipped > 0 {
		log.Printf("intakeQueueWorker: skipped %d queued jobs", skipped)
	}
}
