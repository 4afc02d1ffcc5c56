package view

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrUnmounted is returned when waiting on a view that was unmounted before settling
var ErrUnmounted = errors.New("view unmounted")

// loader runs the single fetch of a feed view and owns its FetchState.
// Results are applied only if they belong to the current mount generation, so
// a fetch finishing after Unmount is dropped instead of updating a stale view.
type loader[T any] struct {
	name     string
	fetch    func(ctx context.Context) (T, error)
	fallback func() T

	mu        sync.Mutex
	state     FetchState[T]
	gen       uint64
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func newLoader[T any](name string, fetch func(ctx context.Context) (T, error), fallback func() T) *loader[T] {
	return &loader[T]{name: name, fetch: fetch, fallback: fallback, done: make(chan struct{})}
}

// mount starts the fetch. Only the first call does anything, a view fetches once per lifetime.
func (l *loader[T]) mount(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mounted || l.unmounted {
		return
	}
	next, err := l.state.Next(Loading[T]())
	if err != nil {
		log.Printf("[WARN] %s mount: %v", l.name, err)
		return
	}
	l.state = next
	l.mounted = true
	l.gen++
	gen := l.gen

	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	log.Printf("[DEBUG] %s fetch started, generation %d", l.name, gen)
	go func() {
		defer cancel()
		v, err := l.fetch(fetchCtx)
		l.settle(gen, v, err)
	}()
}

// settle applies the fetch result if gen is still current
func (l *loader[T]) settle(gen uint64, v T, fetchErr error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.unmounted {
		log.Printf("[DEBUG] %s result of generation %d discarded, current %d", l.name, gen, l.gen)
		return
	}

	result := Loaded(v)
	if fetchErr != nil {
		log.Printf("[WARN] %s fetch failed, showing empty feed: %v", l.name, fetchErr)
		result = Failed(l.fallback(), fetchErr)
	}

	next, err := l.state.Next(result)
	if err != nil {
		log.Printf("[WARN] %s settle: %v", l.name, err)
		return
	}
	l.state = next
	l.closeOnce.Do(func() { close(l.done) })
}

// unmount cancels the in-flight fetch and invalidates its generation
func (l *loader[T]) unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unmounted {
		return
	}
	l.unmounted = true
	l.gen++
	if l.cancel != nil {
		l.cancel()
	}
	l.closeOnce.Do(func() { close(l.done) })
}

// current returns a snapshot of the fetch state
func (l *loader[T]) current() FetchState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// wait blocks until the state settles, the view is unmounted or ctx is done
func (l *loader[T]) wait(ctx context.Context) (FetchState[T], error) {
	select {
	case <-l.done:
	case <-ctx.Done():
		return l.current(), ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.state.Settled() {
		return l.state, ErrUnmounted
	}
	return l.state, nil
}
