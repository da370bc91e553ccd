package servo

import (
	"time"

	"github.com/servolink-protocol/servolink-go/pkg/log"
)

// onStatus is the transport status callback. It stores the latest word and
// wakes every waiter. Updates are last-write-wins; waiters that observe the
// broadcast late see only the most recent word.
func (s *Servo) onStatus(word uint16) {
	s.sw.mu.Lock()
	if word != s.sw.value {
		s.sw.value = word
		close(s.sw.changed)
		s.sw.changed = make(chan struct{})
	}
	s.sw.mu.Unlock()
}

// StatusWord returns the most recently observed raw status word.
func (s *Servo) StatusWord() uint16 {
	s.sw.mu.Lock()
	defer s.sw.mu.Unlock()
	return s.sw.value
}

// State returns the decoded drive state from the most recently observed
// status word.
func (s *Servo) State() (State, Flags) {
	return s.family.decodeState(s.StatusWord())
}

// WaitStatusChange blocks until the tracked status word differs from
// lastSeen and returns the new word. If the tracked word already differs it
// returns immediately. A non-positive timeout blocks indefinitely;
// otherwise ErrTimeout is returned once the budget is exhausted.
func (s *Servo) WaitStatusChange(lastSeen uint16, timeout time.Duration) (uint16, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		s.sw.mu.Lock()
		word := s.sw.value
		changed := s.sw.changed
		s.sw.mu.Unlock()

		if word != lastSeen {
			return word, nil
		}

		if deadline.IsZero() {
			select {
			case <-changed:
			case <-s.stop:
				return 0, ErrClosed
			}
			continue
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, ErrTimeout
		}

		timer := time.NewTimer(remaining)
		select {
		case <-changed:
			timer.Stop()
		case <-s.stop:
			timer.Stop()
			return 0, ErrClosed
		case <-timer.C:
			return 0, ErrTimeout
		}
	}
}

// statusMonitor tracks status word changes, decodes them through the family
// binding and dispatches state change subscribers. It exits when the handle
// is closed.
func (s *Servo) statusMonitor() {
	defer s.wg.Done()

	last := s.StatusWord()
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		word, err := s.WaitStatusChange(last, s.pollInterval)
		if err != nil {
			continue
		}

		oldState, _ := s.family.decodeState(last)
		state, flags := s.family.decodeState(word)
		last = word

		if state != oldState {
			s.logEvent(log.CategoryState, func(e *log.Event) {
				e.State = &log.StateChangeEvent{
					OldState: oldState.String(),
					NewState: state.String(),
				}
			})
		}

		s.stateSubs.dispatch(func(cb StateCallback) {
			cb(state, flags)
		})
	}
}
