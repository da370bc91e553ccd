package discovery

import (
	"context"
	"errors"
	"time"
)

// Service constants for mDNS.
const (
	// ServiceType is the drive gateway service type.
	ServiceType = "_servolink._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default gateway port.
	DefaultPort = 7061

	// InstancePrefix prefixes every advertised instance name.
	InstancePrefix = "SERVOLINK-"
)

// TXT record key constants.
const (
	TXTKeySerial   = "serial" // Gateway serial number
	TXTKeyModel    = "model"  // Drive model name
	TXTKeyFirmware = "fw"     // Firmware version
	TXTKeyNodes    = "nodes"  // Reachable node ids (comma-separated)
)

// Timing constants.
const (
	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second
)

// MaxInstanceNameLen is the DNS label limit.
const MaxInstanceNameLen = 63

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
)

// Drive describes a drive gateway found via mDNS.
type Drive struct {
	// InstanceName is the mDNS instance name (e.g., "SERVOLINK-A1024").
	InstanceName string

	// Host is the hostname (e.g., "drive-a1024.local").
	Host string

	// Port is the service port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// Serial is the gateway serial number (from TXT "serial").
	Serial string

	// Model is the drive model name (from TXT "model").
	Model string

	// Firmware is the firmware version (from TXT "fw").
	Firmware string

	// Nodes lists the node ids reachable behind the gateway
	// (from TXT "nodes").
	Nodes []uint8
}

// DriveInfo contains the information for advertising a drive gateway.
type DriveInfo struct {
	// Serial is the gateway serial number. Required; it also forms the
	// instance name.
	Serial string

	// Model is the drive model name.
	Model string

	// Firmware is the firmware version.
	Firmware string

	// Nodes lists the node ids reachable behind the gateway.
	Nodes []uint8

	// Port is the service port. Zero means DefaultPort.
	Port uint16
}

// Browser finds drive gateways on the local network.
type Browser interface {
	// Browse searches for drive gateways. The channel is closed when the
	// context is cancelled.
	Browse(ctx context.Context) (<-chan *Drive, error)

	// FindBySerial searches for a specific gateway. It returns when found
	// or when the context is cancelled.
	FindBySerial(ctx context.Context, serial string) (*Drive, error)
}

// Advertiser announces a drive gateway on the local network.
type Advertiser interface {
	// Advertise starts announcing the gateway. A second call replaces the
	// previous announcement.
	Advertise(ctx context.Context, info *DriveInfo) error

	// Update replaces the TXT records of the running announcement.
	Update(info *DriveInfo) error

	// Stop withdraws the announcement.
	Stop()
}
