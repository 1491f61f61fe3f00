package core

// Signal reports completion of an asynchronous presentation effect such as a
// fade. Sequences poll it with Until.
type Signal interface {
	Done() bool
}

type doneSignal struct{}

func (doneSignal) Done() bool { return true }

// Completed is a Signal that is already done.
var Completed Signal = doneSignal{}

// Step is one stage of a Sequence. It consumes up to dt seconds and returns
// the unused remainder together with whether the stage has finished.
// Finished stages hand their remainder to the next stage in the same tick.
type Step func(dt float64) (rest float64, done bool)

// Wait pauses the sequence for the given number of seconds.
func Wait(seconds float64) Step {
	elapsed := 0.0
	return func(dt float64) (float64, bool) {
		elapsed += dt
		if elapsed < seconds {
			return 0, false
		}
		return elapsed - seconds, true
	}
}

// Do runs fn once and finishes immediately.
func Do(fn func()) Step {
	return func(dt float64) (float64, bool) {
		fn()
		return dt, true
	}
}

// Until blocks until cond returns true. cond is evaluated once per tick.
func Until(cond func() bool) Step {
	return func(dt float64) (float64, bool) {
		if cond() {
			return dt, true
		}
		return 0, false
	}
}

// Await blocks until the signal produced by start reports done.
// start is invoked the first time the step runs.
func Await(start func() Signal) Step {
	var sig Signal
	return func(dt float64) (float64, bool) {
		if sig == nil {
			sig = start()
			if sig == nil {
				sig = Completed
			}
		}
		if sig.Done() {
			return dt, true
		}
		return 0, false
	}
}

// Repeat calls fn, then waits interval seconds, and so on until fn returns
// false. fn is called immediately when the step starts. interval must be
// positive unless fn is guaranteed to return false eventually.
func Repeat(interval float64, fn func() bool) Step {
	pending := 0.0
	return func(dt float64) (float64, bool) {
		for {
			if pending > 0 {
				if dt < pending {
					pending -= dt
					return 0, false
				}
				dt -= pending
				pending = 0
			}
			if !fn() {
				return dt, true
			}
			pending = interval
		}
	}
}

// Sequence is a resumable, cancellable chain of timed steps advanced by the
// host tick. It replaces engine coroutines with explicit state.
type Sequence struct {
	Name      string
	steps     []Step
	index     int
	finished  bool
	cancelled bool
	onCancel  func()
}

// NewSequence creates a sequence that runs steps in order.
func NewSequence(name string, steps ...Step) *Sequence {
	return &Sequence{Name: name, steps: steps}
}

// OnCancel registers a teardown hook that runs if the sequence is cancelled
// before it finishes.
func (s *Sequence) OnCancel(fn func()) *Sequence {
	s.onCancel = fn
	return s
}

// Tick advances the sequence by dt seconds.
func (s *Sequence) Tick(dt float64) {
	for !s.finished && !s.cancelled {
		if s.index >= len(s.steps) {
			s.finished = true
			return
		}
		rest, done := s.steps[s.index](dt)
		if s.cancelled || !done {
			return
		}
		s.index++
		dt = rest
	}
}

// Cancel stops the sequence and runs its teardown hook.
// Cancelling a finished or already cancelled sequence has no effect.
func (s *Sequence) Cancel() {
	if s.finished || s.cancelled {
		return
	}
	s.cancelled = true
	if s.onCancel != nil {
		s.onCancel()
	}
}

// Done reports whether the sequence is no longer running.
func (s *Sequence) Done() bool {
	return s.finished || s.cancelled
}

// Finished reports whether every step ran to completion.
func (s *Sequence) Finished() bool {
	return s.finished
}

// Cancelled reports whether the sequence was cancelled.
func (s *Sequence) Cancelled() bool {
	return s.cancelled
}

// Slot holds at most one running sequence of a kind. Starting a sequence in
// an occupied slot cancels the previous one first.
type Slot struct {
	current *Sequence
}

// Start cancels the running sequence, if any, and installs seq.
func (s *Slot) Start(seq *Sequence) *Sequence {
	s.Cancel()
	s.current = seq
	return seq
}

// Cancel cancels the running sequence, if any.
func (s *Slot) Cancel() {
	if s.current != nil {
		cur := s.current
		s.current = nil
		cur.Cancel()
	}
}

// Tick advances the running sequence and clears the slot once it is done.
func (s *Slot) Tick(dt float64) {
	cur := s.current
	if cur == nil {
		return
	}
	cur.Tick(dt)
	if s.current == cur && cur.Done() {
		s.current = nil
	}
}

// Active reports whether a sequence is running in the slot.
func (s *Slot) Active() bool {
	return s.current != nil && !s.current.Done()
}

// Current returns the running sequence or nil.
func (s *Slot) Current() *Sequence {
	if s.Active() {
		return s.current
	}
	return nil
}
