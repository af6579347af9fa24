package audio

import "sync"

// CircularBuf is a fixed-capacity FIFO shared between the decoder and the
// playback callback.
type CircularBuf[T any] struct {
	mu   sync.Mutex
	pl   []T
	head int
	tail int
	size int
}

// NewCircularBuf constructs an empty buffer holding up to capacity entries
func NewCircularBuf[T any](capacity int) *CircularBuf[T] {
	return &CircularBuf[T]{
		pl: make([]T, capacity),
	}
}

// Clear resets the circular buffer to an empty-state
func (tc *CircularBuf[T]) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	clear(tc.pl)
	tc.head = 0
	tc.tail = 0
	tc.size = 0
}

// Insert adds a new payload to this buffer (overwriting the oldest entry if
// necessary)
func (tc *CircularBuf[T]) Insert(p T) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.pl[tc.head] = p
	// If head == tail then the list was either full or empty. If full, then
	// we just overwrote the item at tail, so increment both (and don't
	// increment size).
	if tc.head == tc.tail && tc.size > 0 {
		tc.head = (tc.head + 1) % len(tc.pl)
		tc.tail = tc.head
	} else {
		tc.head = (tc.head + 1) % len(tc.pl)
		tc.size++
	}
}

// PopFront returns and removes the oldest value in the circular buffer.
func (tc *CircularBuf[T]) PopFront() (ret T, ok bool) {
	if tc == nil {
		return
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.size == 0 {
		return
	}

	ret = tc.pl[tc.tail]
	var zero T
	tc.pl[tc.tail] = zero
	tc.tail = (tc.tail + 1) % len(tc.pl)
	tc.size--
	return ret, true
}

func (tc *CircularBuf[T]) Size() int {
	if tc == nil {
		return 0
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.size
}

func (tc *CircularBuf[T]) Cap() int {
	return len(tc.pl)
}
