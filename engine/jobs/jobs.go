package jobs

import (
	"fmt"
	"sync"

	"github.com/emberengine/ember/engine/core"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// Task describes one unit of background work. Work runs on a worker
// goroutine; exactly one of OnComplete or OnFailure is invoked afterwards,
// still on the worker. Callbacks that need to touch owner-goroutine state
// must marshal themselves there (the resource manager posts to its op queue).
type Task struct {
	Priority   Priority
	Work       func() (interface{}, error)
	OnComplete func(result interface{})
	OnFailure  func(err error)
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

type Pool struct {
	numWorkers int
	queue      chan Task
	wg         sync.WaitGroup

	mutex  sync.Mutex
	closed bool
}

func NewPool(numWorkers int, channelSize int) (*Pool, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	p := &Pool{
		numWorkers: numWorkers,
		queue:      make(chan Task, channelSize),
	}
	p.start()
	return p, nil
}

func (p *Pool) start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.queue {
				result, err := task.Work()
				if err != nil {
					core.LogWarn("job failed: %v", err)
					if task.OnFailure != nil {
						task.OnFailure(err)
					}
					continue
				}
				if task.OnComplete != nil {
					task.OnComplete(result)
				}
			}
		}()
	}
}

// Submit queues the task for execution, blocking if the queue is full.
// Returns false once the pool has been shut down.
func (p *Pool) Submit(task Task) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return false
	}
	p.queue <- task
	return true
}

// Shutdown stops accepting work and waits for in-flight tasks to finish.
func (p *Pool) Shutdown() error {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return nil
	}
	p.closed = true
	p.mutex.Unlock()

	close(p.queue)
	p.wg.Wait()
	return nil
}
