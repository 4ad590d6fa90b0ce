// Package worker runs the asynchronous legs of webhook handling: everything
// that must not block the acknowledging response (form rendering, ingestion,
// thread replies). Tasks are fire-and-forget; callers observe outcomes only
// through their side effects.
package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Runner accepts background tasks. The production implementation is Pool;
// tests substitute Sync to run tasks inline.
type Runner interface {
	Submit(name string, task func())
}

// Pool is a fixed set of goroutines draining a bounded queue. There is no
// cancellation and no completion signal: a stuck task simply occupies a
// worker and is surfaced through logging.
type Pool struct {
	tasks  chan namedTask
	wg     sync.WaitGroup
	logger *logrus.Logger
}

type namedTask struct {
	name string
	run  func()
}

func NewPool(size, queueLen int, logger *logrus.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueLen < 0 {
		queueLen = 0
	}
	p := &Pool{
		tasks:  make(chan namedTask, queueLen),
		logger: logger,
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

// Submit enqueues a task. Blocks if the queue is full; webhook handlers
// submit before writing their response, so backpressure here delays the ack
// rather than dropping work.
func (p *Pool) Submit(name string, task func()) {
	p.tasks <- namedTask{name: name, run: task}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Shutdown() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.runOne(t)
	}
}

func (p *Pool) runOne(t namedTask) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("task", t.name).Errorf("background task panicked: %v", r)
		}
	}()
	t.run()
}

// Sync runs every task inline on the submitting goroutine. Test use only.
type Sync struct{}

func (Sync) Submit(name string, task func()) {
	task()
}
