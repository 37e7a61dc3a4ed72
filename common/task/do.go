package task

import (
	"sync"
)

type ErrorFunc = func() error

func Parallel(fns ...ErrorFunc) []error {
	var (
		mu   sync.Mutex
		errs = make([]error, 0, len(fns))
		wg   sync.WaitGroup
	)

	for _, fn := range fns {
		wg.Add(1)

		go func(fn ErrorFunc) {
			defer wg.Done()

			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(fn)
	}

	wg.Wait()

	return errs
}

// OnAfter defers onAfter after fn returns
func OnAfter(fn, onAfter ErrorFunc) error {
	defer func() {
		_ = onAfter()
	}()

	return fn()
}
