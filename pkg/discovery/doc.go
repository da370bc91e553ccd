// Package discovery implements mDNS/DNS-SD discovery for drives.
//
// Drive gateways advertise the _servolink._tcp service, one instance per
// gateway. The instance name is SERVOLINK-<serial>. TXT records carry:
// serial (gateway serial number), model (drive model), fw (firmware
// version) and nodes (comma-separated node ids reachable behind the
// gateway).
//
// Browsers aggregate entries by instance name, so a gateway visible on
// several interfaces appears once with all of its addresses.
package discovery
