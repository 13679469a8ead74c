package ingeteam_modbus

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allTables = map[string]CodeTable{
	"boolean":             BooleanStatus,
	"inverter_status":     InverterStatus,
	"battery_status":      BatteryStatus,
	"bms_alarms":          BatteryBMSAlarms,
	"bms_flags":           BatteryBMSFlags,
	"battery_limitation":  BatteryLimitationReasons,
	"ap_reduction_reason": APReductionReasons,
}

func TestCodeTablesValues(t *testing.T) {

	for name, table := range allTables {
		assert.NotEmpty(t, table, name)
		for code, str := range table {
			assert.NotEmpty(t, str, "%s[%d]", name, code)
		}
	}
}

func TestBitmaskTablesArePowersOfTwo(t *testing.T) {

	for _, table := range []CodeTable{BatteryBMSAlarms, BatteryBMSFlags} {
		for bit := range table {
			assert.Equal(t, 1, bits.OnesCount16(bit), "key %d", bit)
		}
	}
}

func TestEnumTablesAreDense(t *testing.T) {

	for _, table := range []CodeTable{InverterStatus, BatteryStatus, BatteryLimitationReasons, APReductionReasons} {
		for i := 0; i < len(table); i++ {
			_, ok := table[uint16(i)]
			assert.True(t, ok, "code %d", i)
		}
	}
}

func TestLookupCode(t *testing.T) {

	assert := assert.New(t)

	assert.Equal("On-grid", LookupCode(InverterStatus, 3))
	assert.Equal("Standby Manual", LookupCode(BatteryStatus, 10))
	assert.Equal("Unknown(42)", LookupCode(InverterStatus, 42))
}

func TestDecodeBitmask(t *testing.T) {

	assert := assert.New(t)

	assert.Empty(DecodeBitmask(BatteryBMSAlarms, 0))
	assert.Equal([]string{"High Current Charge", "High Temperature"}, DecodeBitmask(BatteryBMSAlarms, 0x0009))
	assert.Equal([]string{"System BMS Error"}, DecodeBitmask(BatteryBMSAlarms, 0x0100))
	assert.Equal([]string{"Stop Charge", "Bit 15"}, DecodeBitmask(BatteryBMSFlags, 0x8001))
}

func TestBitmaskString(t *testing.T) {

	assert := assert.New(t)

	assert.Equal(BitmaskNoFlagsStr, BitmaskString(BatteryBMSFlags, 0, BitmaskNoFlagsStr))
	assert.Equal("Stop Charge, Stop Discharge", BitmaskString(BatteryBMSFlags, 0x0003, BitmaskNoFlagsStr))
}
