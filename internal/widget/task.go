package widget

// Task is a single cancellable scheduled action. Each Schedule starts a new
// generation and supersedes the previous one; only the live generation may
// fire, and it fires at most once.
type Task struct {
	seq  uint64
	live bool
}

// Schedule starts a new generation and returns its sequence number.
func (t *Task) Schedule() uint64 {
	t.seq++
	t.live = true
	return t.seq
}

// Cancel invalidates the outstanding generation, if any.
func (t *Task) Cancel() {
	t.live = false
}

// Live reports whether a generation is scheduled and has not yet fired.
func (t *Task) Live() bool {
	return t.live
}

// Fire consumes generation seq. It reports false for superseded, cancelled
// or already fired generations.
func (t *Task) Fire(seq uint64) bool {
	if !t.live || seq != t.seq {
		return false
	}
	t.live = false
	return true
}
