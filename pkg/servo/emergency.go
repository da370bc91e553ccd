package servo

import (
	"sync"
	"time"

	"github.com/servolink-protocol/servolink-go/pkg/log"
)

// emergencyRing is a fixed-capacity ring buffer of emergency codes. The
// capacity is a power of two so the cursors can run free and be masked on
// access. When full, the oldest code is overwritten.
type emergencyRing struct {
	mu     sync.Mutex
	buf    []uint32
	head   int
	tail   int
	notify chan struct{}
}

// nextPow2 rounds n up to the next power of two.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (r *emergencyRing) init(capacity int) {
	if capacity < 1 {
		capacity = defaultEmergencyCapacity
	}
	r.buf = make([]uint32, nextPow2(capacity))
	r.notify = make(chan struct{}, 1)
}

// push appends a code, dropping the oldest one when the ring is full.
// The caller holds the tracker lock.
func (r *emergencyRing) push(code uint32) {
	if r.head-r.tail == len(r.buf) {
		r.tail++
	}
	r.buf[r.head&(len(r.buf)-1)] = code
	r.head++
}

// pop removes the oldest code. The caller holds the tracker lock.
func (r *emergencyRing) pop() (uint32, bool) {
	if r.head == r.tail {
		return 0, false
	}
	code := r.buf[r.tail&(len(r.buf)-1)]
	r.tail++
	return code, true
}

func (r *emergencyRing) len() int {
	return r.head - r.tail
}

// onEmergency is the transport emergency callback. It queues the code and
// nudges the monitor.
func (s *Servo) onEmergency(code uint32) {
	s.emcy.mu.Lock()
	s.emcy.push(code)
	s.emcy.mu.Unlock()

	select {
	case s.emcy.notify <- struct{}{}:
	default:
	}

	s.logEvent(log.CategoryEmergency, func(e *log.Event) {
		e.Emergency = &log.EmergencyEvent{Code: code}
	})
}

// emergencyMonitor drains queued emergency codes and dispatches them to
// subscribers one at a time, releasing the tracker lock between pops so the
// transport callback never blocks on subscriber work.
func (s *Servo) emergencyMonitor() {
	defer s.wg.Done()

	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-s.emcy.notify:
		case <-timer.C:
		}
		timer.Reset(s.pollInterval)

		for {
			s.emcy.mu.Lock()
			code, ok := s.emcy.pop()
			s.emcy.mu.Unlock()
			if !ok {
				break
			}

			s.emcySubs.dispatch(func(cb EmergencyCallback) {
				cb(code)
			})
		}
	}
}
