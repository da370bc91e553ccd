package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTXT(t *testing.T) {
	info := &DriveInfo{
		Serial:   "A1024",
		Model:    "NIX-40",
		Firmware: "2.1.0",
		Nodes:    []uint8{1, 2, 17},
	}

	txt := EncodeTXT(info)
	assert.Equal(t, "A1024", txt[TXTKeySerial])
	assert.Equal(t, "NIX-40", txt[TXTKeyModel])
	assert.Equal(t, "2.1.0", txt[TXTKeyFirmware])
	assert.Equal(t, "1,2,17", txt[TXTKeyNodes])

	decoded, err := DecodeTXT(txt)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
}

func TestEncodeTXTOptionalFieldsOmitted(t *testing.T) {
	txt := EncodeTXT(&DriveInfo{Serial: "A1024"})

	assert.Equal(t, "A1024", txt[TXTKeySerial])
	assert.NotContains(t, txt, TXTKeyModel)
	assert.NotContains(t, txt, TXTKeyFirmware)
	assert.NotContains(t, txt, TXTKeyNodes)
}

func TestDecodeTXTMissingSerial(t *testing.T) {
	_, err := DecodeTXT(TXTRecordMap{TXTKeyModel: "NIX-40"})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestDecodeTXTInvalidNodes(t *testing.T) {
	_, err := DecodeTXT(TXTRecordMap{
		TXTKeySerial: "A1024",
		TXTKeyNodes:  "1,banana",
	})
	assert.ErrorIs(t, err, ErrInvalidTXTRecord)
}

func TestDecodeTXTNodeOutOfRange(t *testing.T) {
	_, err := DecodeTXT(TXTRecordMap{
		TXTKeySerial: "A1024",
		TXTKeyNodes:  "300",
	})
	assert.ErrorIs(t, err, ErrInvalidTXTRecord)
}

func TestTXTRecordsRoundTrip(t *testing.T) {
	txt := TXTRecordMap{
		"serial": "A1024",
		"nodes":  "1,2",
		"flag":   "",
	}

	back := StringsToTXTRecords(TXTRecordsToStrings(txt))
	assert.Equal(t, txt, back)
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "SERVOLINK-A1024", InstanceName("A1024"))

	long := InstanceName(strings.Repeat("x", 100))
	assert.Len(t, long, MaxInstanceNameLen)
	assert.NoError(t, ValidateInstanceName(long))
}

func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, ValidateInstanceName("SERVOLINK-A1024"))
	assert.ErrorIs(t, ValidateInstanceName(strings.Repeat("x", 64)), ErrInstanceNameTooLong)
	assert.Error(t, ValidateInstanceName(""))
}
