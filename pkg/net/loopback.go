package net

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servolink-protocol/servolink-go/internal/slots"
	"github.com/servolink-protocol/servolink-go/pkg/log"
)

type regKey struct {
	node uint8
	addr uint32
}

type statusSub struct {
	node uint8
	cb   StatusCallback
}

type emergencySub struct {
	node uint8
	cb   EmergencyCallback
}

// Loopback is an in-memory Network. Reads and writes hit a local register
// space, and tests inject status words and emergency codes through
// PushStatus and PushEmergency.
type Loopback struct {
	connID string
	logger log.Logger

	mu         sync.Mutex
	regs       map[regKey][]byte
	statusSubs *slots.Table[statusSub]
	emcySubs   *slots.Table[emergencySub]
	closed     bool
}

// NewLoopback creates an empty loopback network. A nil logger disables
// protocol logging.
func NewLoopback(logger log.Logger) *Loopback {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Loopback{
		connID:     uuid.NewString(),
		logger:     logger,
		regs:       make(map[regKey][]byte),
		statusSubs: slots.New[statusSub](0),
		emcySubs:   slots.New[emergencySub](0),
	}
}

// ConnectionID returns the UUID identifying this network session in
// protocol logs.
func (l *Loopback) ConnectionID() string { return l.connID }

// Protocol reports ProtocolVirtual.
func (l *Loopback) Protocol() Protocol { return ProtocolVirtual }

// Preload seeds a register with raw bytes without emitting log events.
func (l *Loopback) Preload(node uint8, addr uint32, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.regs[regKey{node, addr}] = append([]byte(nil), data...)
}

// Read returns the raw bytes of a register.
func (l *Loopback) Read(node uint8, addr uint32, size int) ([]byte, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	data, ok := l.regs[regKey{node, addr}]
	l.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrUnknownAddress, addr)
	}
	if size > 0 && len(data) < size {
		return nil, fmt.Errorf("register %#x holds %d bytes, need %d", addr, len(data), size)
	}

	out := append([]byte(nil), data...)
	l.log(node, log.DirectionIn, log.CategoryAccess, &log.AccessEvent{
		Address: addr,
		Data:    out,
	})
	return out, nil
}

// Write stores raw bytes into a register. With confirm set the stored value
// is read back and compared.
func (l *Loopback) Write(node uint8, addr uint32, data []byte, confirm bool) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	key := regKey{node, addr}
	l.regs[key] = append([]byte(nil), data...)

	if confirm {
		stored := l.regs[key]
		if string(stored) != string(data) {
			l.mu.Unlock()
			return fmt.Errorf("%w: %#x", ErrWriteMismatch, addr)
		}
	}
	l.mu.Unlock()

	l.log(node, log.DirectionOut, log.CategoryAccess, &log.AccessEvent{
		Address:   addr,
		Write:     true,
		Confirmed: confirm,
		Data:      append([]byte(nil), data...),
	})
	return nil
}

// StatusSubscribe registers a status word callback for a node.
func (l *Loopback) StatusSubscribe(node uint8, cb StatusCallback) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return l.statusSubs.Add(statusSub{node: node, cb: cb})
}

// StatusUnsubscribe removes a status subscription.
func (l *Loopback) StatusUnsubscribe(slot int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statusSubs.Remove(slot)
}

// EmergencySubscribe registers an emergency code callback for a node.
func (l *Loopback) EmergencySubscribe(node uint8, cb EmergencyCallback) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return l.emcySubs.Add(emergencySub{node: node, cb: cb})
}

// EmergencyUnsubscribe removes an emergency subscription.
func (l *Loopback) EmergencyUnsubscribe(slot int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emcySubs.Remove(slot)
}

// PushStatus delivers a status word to all subscribers of the node.
// Callbacks run outside the network lock.
func (l *Loopback) PushStatus(node uint8, word uint16) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	var cbs []StatusCallback
	l.statusSubs.Each(func(s statusSub) {
		if s.node == node {
			cbs = append(cbs, s.cb)
		}
	})
	l.mu.Unlock()

	l.log(node, log.DirectionIn, log.CategoryStatus, &log.StatusEvent{Word: word})
	for _, cb := range cbs {
		cb(word)
	}
}

// PushEmergency delivers an emergency code to all subscribers of the node.
// Callbacks run outside the network lock.
func (l *Loopback) PushEmergency(node uint8, code uint32) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	var cbs []EmergencyCallback
	l.emcySubs.Each(func(s emergencySub) {
		if s.node == node {
			cbs = append(cbs, s.cb)
		}
	})
	l.mu.Unlock()

	l.log(node, log.DirectionIn, log.CategoryEmergency, &log.EmergencyEvent{Code: code})
	for _, cb := range cbs {
		cb(code)
	}
}

// Close shuts the loopback down and drops all subscriptions.
func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.statusSubs = slots.New[statusSub](0)
	l.emcySubs = slots.New[emergencySub](0)
	return nil
}

func (l *Loopback) log(node uint8, dir log.Direction, cat log.Category, payload any) {
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: l.connID,
		Direction:    dir,
		Layer:        log.LayerTransport,
		Category:     cat,
		NodeID:       node,
	}
	switch p := payload.(type) {
	case *log.AccessEvent:
		event.Access = p
	case *log.StatusEvent:
		event.Status = p
	case *log.EmergencyEvent:
		event.Emergency = p
	}
	l.logger.Log(event)
}

// Compile-time interface satisfaction check.
var _ Network = (*Loopback)(nil)
