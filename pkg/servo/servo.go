package servo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servolink-protocol/servolink-go/pkg/dict"
	"github.com/servolink-protocol/servolink-go/pkg/log"
	"github.com/servolink-protocol/servolink-go/pkg/net"
)

// Default tuning of a servo handle.
const (
	// defaultPollInterval bounds the shutdown latency of the monitor
	// goroutines.
	defaultPollInterval = 100 * time.Millisecond

	// defaultEmergencyCapacity is the emergency ring buffer size.
	defaultEmergencyCapacity = 16
)

// StateCallback receives decoded drive state changes.
type StateCallback func(state State, flags Flags)

// EmergencyCallback receives drive emergency codes.
type EmergencyCallback func(code uint32)

// Servo is a handle to one drive on a network. It owns an optional
// dictionary, a units configuration, the status and emergency trackers and
// their monitor goroutines. All methods are safe for concurrent use.
type Servo struct {
	network net.Network
	node    uint8
	family  *family
	logger  log.Logger
	uid     string

	pollInterval time.Duration

	dictMu sync.RWMutex
	dict   *dict.Dictionary

	units struct {
		mu     sync.Mutex
		torque TorqueUnits
		pos    PositionUnits
		vel    VelocityUnits
		acc    AccelerationUnits
		pres   uint32
		vres   uint32
	}

	sw struct {
		mu      sync.Mutex
		value   uint16
		changed chan struct{}
	}
	swSlot int

	emcy     emergencyRing
	emcySlot int

	stateSubs registry[StateCallback]
	emcySubs  registry[EmergencyCallback]

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a servo handle.
type Option func(*options)

type options struct {
	dictPath     string
	logger       log.Logger
	pollInterval time.Duration
	emcyCapacity int
	maxSubs      int
}

// WithDictionary loads the register dictionary at the given path during
// construction.
func WithDictionary(path string) Option {
	return func(o *options) { o.dictPath = path }
}

// WithLogger sets the protocol event logger. The default discards events.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStatusPoll sets the internal poll interval of the monitor goroutines,
// which bounds shutdown latency.
func WithStatusPoll(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithEmergencyCapacity sets the emergency ring buffer capacity. Values are
// rounded up to the next power of two.
func WithEmergencyCapacity(n int) Option {
	return func(o *options) { o.emcyCapacity = n }
}

// WithMaxSubscribers caps each subscriber registry. Zero means unbounded.
func WithMaxSubscribers(n int) Option {
	return func(o *options) { o.maxSubs = n }
}

// New creates a servo handle for the given node. It selects the drive
// family binding from the network protocol, subscribes to status and
// emergency callbacks and starts the monitor goroutines.
func New(network net.Network, node uint8, opts ...Option) (*Servo, error) {
	o := options{
		logger:       log.NoopLogger{},
		pollInterval: defaultPollInterval,
		emcyCapacity: defaultEmergencyCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	fam, err := selectFamily(network.Protocol())
	if err != nil {
		return nil, err
	}

	s := &Servo{
		network:      network,
		node:         node,
		family:       fam,
		logger:       o.logger,
		uid:          uuid.NewString(),
		pollInterval: o.pollInterval,
		stop:         make(chan struct{}),
	}
	s.sw.changed = make(chan struct{})
	s.units.pres = 1
	s.units.vres = 1
	s.emcy.init(o.emcyCapacity)
	s.stateSubs.init(o.maxSubs)
	s.emcySubs.init(o.maxSubs)

	if o.dictPath != "" {
		d, err := dict.Load(o.dictPath)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		s.dict = d
	}

	s.swSlot, err = network.StatusSubscribe(node, s.onStatus)
	if err != nil {
		return nil, fmt.Errorf("status subscription: %w", err)
	}

	s.emcySlot, err = network.EmergencySubscribe(node, s.onEmergency)
	if err != nil {
		network.StatusUnsubscribe(s.swSlot)
		return nil, fmt.Errorf("emergency subscription: %w", err)
	}

	s.wg.Add(2)
	go s.statusMonitor()
	go s.emergencyMonitor()

	return s, nil
}

// NodeID returns the drive node id of this handle.
func (s *Servo) NodeID() uint8 { return s.node }

// Network returns the shared network the handle was built on.
func (s *Servo) Network() net.Network { return s.network }

// Close signals both monitor goroutines, joins them and unsubscribes from
// the transport. It is idempotent. The shared network is not closed.
func (s *Servo) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()

		s.network.EmergencyUnsubscribe(s.emcySlot)
		s.network.StatusUnsubscribe(s.swSlot)
	})
	return nil
}

// Dict returns the loaded dictionary, or nil.
func (s *Servo) Dict() *dict.Dictionary {
	s.dictMu.RLock()
	defer s.dictMu.RUnlock()
	return s.dict
}

// LoadDict loads a dictionary from the given path. It fails with
// ErrAlreadyLoaded if the handle already has one.
func (s *Servo) LoadDict(path string) error {
	s.dictMu.Lock()
	defer s.dictMu.Unlock()

	if s.dict != nil {
		return ErrAlreadyLoaded
	}

	d, err := dict.Load(path)
	if err != nil {
		return err
	}
	s.dict = d
	return nil
}

// StateSubscribe registers a callback for decoded state changes and returns
// its slot. Callbacks run on the status monitor goroutine and must not
// subscribe or unsubscribe reentrantly.
func (s *Servo) StateSubscribe(cb StateCallback) (int, error) {
	return s.stateSubs.add(cb)
}

// StateUnsubscribe removes a state subscription. Out-of-range slots are
// ignored.
func (s *Servo) StateUnsubscribe(slot int) {
	s.stateSubs.remove(slot)
}

// EmergencySubscribe registers a callback for emergency codes and returns
// its slot. Callbacks run on the emergency monitor goroutine and must not
// subscribe or unsubscribe reentrantly.
func (s *Servo) EmergencySubscribe(cb EmergencyCallback) (int, error) {
	return s.emcySubs.add(cb)
}

// EmergencyUnsubscribe removes an emergency subscription. Out-of-range
// slots are ignored.
func (s *Servo) EmergencyUnsubscribe(slot int) {
	s.emcySubs.remove(slot)
}

func (s *Servo) logEvent(cat log.Category, mutate func(*log.Event)) {
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.uid,
		Direction:    log.DirectionIn,
		Layer:        log.LayerServo,
		Category:     cat,
		NodeID:       s.node,
	}
	mutate(&event)
	s.logger.Log(event)
}
