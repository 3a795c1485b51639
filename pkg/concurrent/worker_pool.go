package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerJobFunc additionally receives the 1-based worker id, for jobs that
// need worker-local state (e.g. one calculation engine per worker).
type WorkerJobFunc[T any, G any] func(workerID int, job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexedJob[T]
	results    chan indexedResult[G]
	wg         sync.WaitGroup
}

type indexedJob[T any] struct {
	idx int
	job T
}

type indexedResult[G any] struct {
	idx int
	res G
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexedJob[T], jobQueueSize),
		results:    make(chan indexedResult[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(id int, jobFunc WorkerJobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		res := jobFunc(id, job.job)
		wp.results <- indexedResult[G]{idx: job.idx, res: res}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	wp.StartWithWorkerID(func(_ int, job T) G { return jobFunc(job) })
}

func (wp *WorkerPool[T, G]) StartWithWorkerID(jobFunc WorkerJobFunc[T, G]) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(idx int, job T) {
	wp.jobQueue <- indexedJob[T]{idx: idx, job: job}
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// CollectOrdered drains the results channel and returns results indexed by
// their submission order, so a batch evaluated across workers stays
// deterministic regardless of scheduling.
func (wp *WorkerPool[T, G]) CollectOrdered(n int) []G {
	out := make([]G, n)
	for r := range wp.results {
		out[r.idx] = r.res
	}
	return out
}

// MapOrdered runs jobFunc over jobs on numWorkers goroutines and returns
// results in input order. one-shot convenience over the pool primitives.
func MapOrdered[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	return MapOrderedWithWorkerID(numWorkers, jobs, func(_ int, job T) G { return jobFunc(job) })
}

func MapOrderedWithWorkerID[T any, G any](numWorkers int, jobs []T, jobFunc WorkerJobFunc[T, G]) []G {
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}
	if numWorkers <= 1 {
		out := make([]G, 0, len(jobs))
		for _, job := range jobs {
			out = append(out, jobFunc(1, job))
		}
		return out
	}

	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.StartWithWorkerID(jobFunc)
	for i, job := range jobs {
		wp.AddJob(i, job)
	}
	wp.Close()
	go wp.Wait()
	return wp.CollectOrdered(len(jobs))
}
