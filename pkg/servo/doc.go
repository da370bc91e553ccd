// Package servo provides handles to drives on a network.
//
// A Servo binds one node id on a net.Network to a drive family. It owns an
// optional register dictionary, a physical units configuration, a status
// word tracker and an emergency code queue. Handles on the same network are
// independent; closing a handle does not close the network.
//
// # Register access
//
// The RawRead and RawWrite families move native scalars with strict data
// type and access mode checking; violations are reported before the
// transport is touched. Read and Write convert between native values and
// physical units through the register's unit tag and the selected units.
// Registers come either from the predefined set (RegControlWord and
// friends) or from a loaded dictionary, looked up by id. An explicit
// register always wins over the dictionary.
//
// # Status and emergencies
//
// The transport pushes status words and emergency codes asynchronously.
// The status tracker keeps the latest word and supports blocking waits
// through WaitStatusChange; decoded state transitions fan out to
// StateSubscribe callbacks. Emergency codes queue in a fixed ring that
// drops the oldest code on overflow and fan out to EmergencySubscribe
// callbacks.
//
// # Motion
//
// The motion operations (Enable, Disable, FaultReset, PositionSet, ...)
// walk the drive state machine through the control word and block on
// status word transitions, each bounded by a caller timeout.
package servo
