package task

import (
	"time"
)

type TimerFunc = func()

type Timer interface {
	After(TimerFunc, time.Duration)
	Close() error
}

type timer struct {
	done chan struct{}
}

func NewTimer() Timer {
	return &timer{
		done: make(chan struct{}),
	}
}

func (t *timer) After(fn TimerFunc, after time.Duration) {
	t0 := time.NewTimer(after)
	defer t0.Stop()

	select {
	case <-t0.C:
		fn()
	case <-t.done:
	}
}

func (t *timer) Close() error {
	close(t.done)

	return nil
}
