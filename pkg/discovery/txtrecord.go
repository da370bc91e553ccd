package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates TXT records for a drive gateway announcement.
func EncodeTXT(info *DriveInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeySerial] = info.Serial

	// Optional fields
	if info.Model != "" {
		txt[TXTKeyModel] = info.Model
	}
	if info.Firmware != "" {
		txt[TXTKeyFirmware] = info.Firmware
	}
	if len(info.Nodes) > 0 {
		txt[TXTKeyNodes] = encodeNodes(info.Nodes)
	}

	return txt
}

// DecodeTXT parses TXT records from a drive gateway announcement.
func DecodeTXT(txt TXTRecordMap) (*DriveInfo, error) {
	info := &DriveInfo{}

	var ok bool
	info.Serial, ok = txt[TXTKeySerial]
	if !ok || info.Serial == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeySerial)
	}

	info.Model = txt[TXTKeyModel]
	info.Firmware = txt[TXTKeyFirmware]

	if nodesStr, ok := txt[TXTKeyNodes]; ok {
		nodes, err := parseNodes(nodesStr)
		if err != nil {
			return nil, err
		}
		info.Nodes = nodes
	}

	return info, nil
}

// encodeNodes converts node ids to a comma-separated string.
func encodeNodes(nodes []uint8) string {
	strs := make([]string, len(nodes))
	for i, n := range nodes {
		strs[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(strs, ",")
}

// parseNodes parses a comma-separated node id string.
func parseNodes(s string) ([]uint8, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	nodes := make([]uint8, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid node id %q", ErrInvalidTXTRecord, p)
		}
		nodes = append(nodes, uint8(n))
	}

	return nodes, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value"
// strings, the format used by mDNS libraries.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a
// TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// InstanceName builds the mDNS instance name for a gateway serial.
func InstanceName(serial string) string {
	name := InstancePrefix + serial
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
