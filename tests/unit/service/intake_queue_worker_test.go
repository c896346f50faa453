package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/service"
	"aansluitintake/mocks"
)

func TestIntakeQueueWorker_PollsAndDispatches(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	job := domain.IntakeJob{
		ID:       uuid.New(),
		FileName: "meterkast.jpg",
		FileType: domain.FileTypeJPG,
		Status:   domain.JobStatusProcessing,
	}

	// First poll returns one job, subsequent polls return empty
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{job}, nil).Once()
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{}, nil).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Maybe()

	intakeSvc.On("ProcessJob", mock.Anything, mock.AnythingOfType("*domain.IntakeJob")).
		Return().Maybe()

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	jobRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	intakeSvc.AssertCalled(t, "ProcessJob", mock.Anything, mock.AnythingOfType("*domain.IntakeJob"))
}

func TestIntakeQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}

	// Return empty to verify the limit parameter
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{}, nil).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Maybe()
	intakeSvc.On("ProcessJob", mock.Anything, mock.AnythingOfType("*domain.IntakeJob")).
		Return().Maybe()

	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Verify ClaimQueued was called with limit <= concurrency
	for _, call := range jobRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestIntakeQueueWorker_CleanShutdown(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{}, nil).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Once()

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Cancel immediately
	cancel()

	select {
	case <-done:
		// Success — Start returned promptly
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	// Remaining queued jobs get skipped on the way out
	jobRepo.AssertCalled(t, "SkipQueued", mock.Anything)
}

func TestIntakeQueueWorker_InFlightJobFinishesDuringShutdown(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	job := domain.IntakeJob{ID: uuid.New(), FileName: "offerte.pdf", FileType: domain.FileTypePDF}

	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{job}, nil).Once()
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{}, nil).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Maybe()

	processed := make(chan struct{})
	intakeSvc.On("ProcessJob", mock.Anything, mock.AnythingOfType("*domain.IntakeJob")).
		Run(func(args mock.Arguments) {
			// Simulate slow processing that outlives the cancel below
			time.Sleep(150 * time.Millisecond)
			close(processed)
		}).Return().Once()

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let the job get claimed, then cancel while it is still running
	time.Sleep(80 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	// The in-flight job must have completed before Start returned
	select {
	case <-processed:
	default:
		t.Fatal("Start returned before the in-flight job finished")
	}
}

func TestIntakeQueueWorker_EmptyQueueDoesNothing(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.IntakeJob{}, nil).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Maybe()

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	// ProcessJob should never have been called
	intakeSvc.AssertNotCalled(t, "ProcessJob", mock.Anything, mock.Anything)
}

func TestIntakeQueueWorker_ClaimQueuedError(t *testing.T) {
	jobRepo := new(mocks.MockIntakeJobRepo)
	intakeSvc := new(mocks.MockIntakeService)

	// Return an error on poll
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection error")).Maybe()
	jobRepo.On("SkipQueued", mock.Anything).Return(int64(0), nil).Maybe()

	cfg := service.IntakeQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let a few poll cycles happen with errors
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Success — no panic, no goroutine leak
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	// ProcessJob should never have been called
	intakeSvc.AssertNotCalled(t, "ProcessJob", mock.Anything, mock.Anything)
}
