package sim

// DeferredQueue schedules actions a fixed number of ticks ahead. It replaces
// wall-clock timers so that deferred state changes stay deterministic and
// inside the update pass.
type DeferredQueue struct {
	tick  int
	items []deferredAction
}

type deferredAction struct {
	due int
	fn  func()
}

// Schedule runs fn after delay ticks. A delay <= 0 runs on the next Advance.
func (q *DeferredQueue) Schedule(delay int, fn func()) {
	if fn == nil {
		return
	}
	if delay < 1 {
		delay = 1
	}
	q.items = append(q.items, deferredAction{due: q.tick + delay, fn: fn})
}

// Advance moves the queue forward one tick and runs every due action in
// scheduling order.
func (q *DeferredQueue) Advance() {
	q.tick++
	remaining := q.items[:0]
	var due []func()
	for _, item := range q.items {
		if item.due <= q.tick {
			due = append(due, item.fn)
			continue
		}
		remaining = append(remaining, item)
	}
	q.items = remaining
	for _, fn := range due {
		fn()
	}
}

func (q *DeferredQueue) Pending() int {
	return len(q.items)
}
