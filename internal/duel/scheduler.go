package duel

// Token identifies a scheduled callback. The zero Token is never issued.
type Token struct {
	id         uint64
	generation uint64
}

// IsZero reports whether t was never issued.
func (t Token) IsZero() bool {
	return t.id == 0
}

type scheduled struct {
	token Token
	due   uint64
	fn    func()
}

// Scheduler runs callbacks a whole number of ticks in the future. It has no
// clock of its own; time moves only when Advance is called. CancelAll opens a
// new generation, after which tokens from the previous one are inert.
type Scheduler struct {
	now        uint64
	nextID     uint64
	generation uint64
	queue      []scheduled
}

// NewScheduler returns an empty scheduler at tick zero.
func NewScheduler() *Scheduler {
	return &Scheduler{generation: 1}
}

// Now is the number of Advance calls so far.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Schedule queues fn to run delayTicks Advance calls from now. Delays below
// one are raised to one.
func (s *Scheduler) Schedule(delayTicks int, fn func()) Token {
	if delayTicks < 1 {
		delayTicks = 1
	}
	s.nextID++
	tok := Token{id: s.nextID, generation: s.generation}
	s.queue = append(s.queue, scheduled{token: tok, due: s.now + uint64(delayTicks), fn: fn})
	return tok
}

// Cancel removes a pending callback. It returns false if the token already
// fired, was cancelled, or belongs to an earlier generation.
func (s *Scheduler) Cancel(tok Token) bool {
	if tok.IsZero() || tok.generation != s.generation {
		return false
	}
	for i, it := range s.queue {
		if it.token == tok {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending callback and starts a new generation.
func (s *Scheduler) CancelAll() {
	s.queue = nil
	s.generation++
}

// Pending is the number of callbacks waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves time forward one tick and runs every callback now due, in
// due order then schedule order. Callbacks may schedule or cancel; anything
// they schedule is at least one tick out and will not run in this call.
func (s *Scheduler) Advance() {
	s.now++
	// Pop one at a time so a callback can still cancel a sibling due on the
	// same tick.
	for {
		i := s.nextDue()
		if i < 0 {
			return
		}
		it := s.queue[i]
		s.queue = append(s.queue[:i], s.queue[i+1:]...)
		it.fn()
	}
}

// nextDue returns the index of the earliest due callback, or -1. Ties go to
// the one scheduled first.
func (s *Scheduler) nextDue() int {
	best := -1
	for i, it := range s.queue {
		if it.due > s.now {
			continue
		}
		if best < 0 || it.due < s.queue[best].due {
			best = i
		}
	}
	return best
}
