package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job is a unit of background work. Run is executed on a worker goroutine and
// its error return drives the queue's retry policy.
type Job interface {
	Name() string
	Run() error
}

// Handle identifies a submitted job.
type Handle struct {
	ID         uuid.UUID
	EnqueuedAt time.Time
}

type submission struct {
	handle Handle
	job    Job
}

// Queue is an in-process worker pool consuming a buffered job channel.
// Submit never blocks the request path; jobs are dropped when the buffer
// is full.
type Queue struct {
	jobs       chan submission
	wg         sync.WaitGroup
	maxRetries int
	backoff    time.Duration
}

func NewQueue(workers, buffer int) *Queue {
	q := &Queue{
		jobs:       make(chan submission, buffer),
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *Queue) Submit(job Job) Handle {
	h := Handle{ID: uuid.New(), EnqueuedAt: time.Now()}
	select {
	case q.jobs <- submission{handle: h, job: job}:
		return h
	default:
		log.Printf("Job queue full, dropping job %s", job.Name())
		return Handle{}
	}
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (q *Queue) Stop() {
	close(q.jobs)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for s := range q.jobs {
		q.process(s)
	}
}

func (q *Queue) process(s submission) {
	for attempt := 1; ; attempt++ {
		err := s.job.Run()
		if err == nil {
			return
		}
		log.Printf("🔥 Job %s (%s) attempt %d failed: %v", s.job.Name(), s.handle.ID, attempt, err)
		if attempt >= q.maxRetries {
			log.Printf("Job %s (%s) dropped after %d attempts", s.job.Name(), s.handle.ID, attempt)
			return
		}
		time.Sleep(q.backoff * time.Duration(attempt))
	}
}

var defaultQueue *Queue

// Init creates the process-wide queue used by handlers and services.
func Init(workers, buffer int) {
	defaultQueue = NewQueue(workers, buffer)
	log.Printf("✅ Job queue started with %d worker(s)", workers)
}

func Default() *Queue {
	return defaultQueue
}

// Submit enqueues on the process-wide queue. Safe to call before Init; the
// job is dropped with a log line, which keeps request handlers decoupled from
// queue availability.
func Submit(job Job) Handle {
	if defaultQueue == nil {
		log.Printf("Job queue not initialized, dropping job %s", job.Name())
		return Handle{}
	}
	return defaultQueue.Submit(job)
}
