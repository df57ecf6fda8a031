package email

import (
	"sync"

	"contacts-api/internal/logger"

	"go.uber.org/zap"
)

// Job is a queued confirmation email.
type Job struct {
	To         string
	Username   string
	ConfirmURL string
}

// Dispatcher decouples email delivery from the request/response cycle. Jobs
// are handed to a single worker goroutine over a buffered channel; send
// failures are logged and dropped, never surfaced to the caller and never
// retried.
type Dispatcher struct {
	sender Sender
	jobs   chan Job
	wg     sync.WaitGroup
	once   sync.Once
}

const defaultQueueSize = 64

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		jobs:   make(chan Job, defaultQueueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Enqueue hands a job to the worker without blocking the request. When the
// queue is full the job is dropped and logged.
func (d *Dispatcher) Enqueue(job Job) {
	select {
	case d.jobs <- job:
	default:
		logger.Warn("Email queue full, dropping confirmation email",
			zap.String("to", job.To),
		)
	}
}

// Stop closes the queue and waits for the worker to drain it.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for job := range d.jobs {
		if err := d.sender.SendConfirmation(job.To, job.Username, job.ConfirmURL); err != nil {
			logger.Error("Failed to send confirmation email",
				zap.String("to", job.To),
				zap.Error(err),
			)
			continue
		}

		logger.Debug("Confirmation email sent",
			zap.String("to", job.To),
		)
	}
}
