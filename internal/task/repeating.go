package task

import (
	"sync"
	"time"
)

// Repeating executes a function in a fixed interval until stopped
type Repeating struct {
	fn       func()
	interval time.Duration

	mutex  sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

// NewRepeating creates a new repeating task executing fn every interval once started
func NewRepeating(fn func(), interval time.Duration) *Repeating {
	return &Repeating{
		fn:       fn,
		interval: interval,
	}
}

// Start starts the repeating task.
// If the task is already running, this is a no-op.
func (task *Repeating) Start() {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	if task.ticker != nil {
		return
	}
	task.ticker = time.NewTicker(task.interval)
	task.done = make(chan struct{})
	go task.run(task.ticker, task.done)
}

// Stop stops the repeating task.
// If the task is not running, this is a no-op.
func (task *Repeating) Stop() {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	if task.ticker == nil {
		return
	}
	task.ticker.Stop()
	close(task.done)
	task.ticker = nil
	task.done = nil
}

func (task *Repeating) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			task.fn()
		case <-done:
			return
		}
	}
}
