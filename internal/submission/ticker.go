package submission

import (
	"sync"
	"time"
)

// Ticker drives decorative effects such as falling stars. It runs on its own
// and never touches controller state.
type Ticker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func StartTicker(interval time.Duration, fn func()) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				fn()
			}
		}
	}()
	return t
}

// Stop is safe to call more than once and returns after the last tick.
func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
