package ingeteam_modbus

import (
	"fmt"
	"math"
)

type RegisterType uint8

const (
	RegUint16 RegisterType = iota
	RegInt16
	RegUint32
)

// Size returns the number of 16 bit words the type spans.
func (t RegisterType) Size() uint16 {
	if t == RegUint32 {
		return 2
	}
	return 1
}

// decodeFn stores the decoded form of a raw register value into data.
type decodeFn func(raw int64, data map[string]any)

type Register struct {
	Keys   []string
	Offset uint16
	Type   RegisterType
	decode decodeFn
}

// RegisterBlock is a contiguous range of input registers read in one request.
type RegisterBlock struct {
	Name      string
	Start     uint16
	Registers []Register
}

const (
	BLOCK_INVERTER = "inverter"
	BLOCK_BATTERY  = "battery"
	BLOCK_METER    = "meter"
)

// Count returns the number of words needed to cover every register of the block.
func (b RegisterBlock) Count() uint16 {
	var count uint16
	for _, reg := range b.Registers {
		if end := reg.Offset + reg.Type.Size(); end > count {
			count = end
		}
	}
	return count
}

// Decode turns the raw words of the block into sensor values keyed by sensor key.
func (b RegisterBlock) Decode(words []uint16, data map[string]any) {
	for _, reg := range b.Registers {
		if int(reg.Offset+reg.Type.Size()) > len(words) {
			continue
		}
		reg.decode(rawValue(words[reg.Offset:], reg.Type), data)
	}
}

func rawValue(words []uint16, t RegisterType) int64 {
	switch t {
	case RegInt16:
		return int64(int16(words[0]))
	case RegUint32:
		return int64(uint32(words[0])<<16 | uint32(words[1]))
	default:
		return int64(words[0])
	}
}

func number(key string, offset uint16, t RegisterType, scale float64) Register {
	return Register{
		Keys:   []string{key},
		Offset: offset,
		Type:   t,
		decode: func(raw int64, data map[string]any) {
			data[key] = scaled(raw, scale)
		},
	}
}

func enum(key string, offset uint16, table CodeTable) Register {
	return Register{
		Keys:   []string{key},
		Offset: offset,
		Type:   RegUint16,
		decode: func(raw int64, data map[string]any) {
			data[key] = LookupCode(table, uint16(raw))
		},
	}
}

func bitmask(key string, offset uint16, table CodeTable, none string) Register {
	return Register{
		Keys:   []string{key},
		Offset: offset,
		Type:   RegUint16,
		decode: func(raw int64, data map[string]any) {
			data[key] = BitmaskString(table, uint16(raw), none)
		},
	}
}

// split decodes one signed register into two non-negative values: positive
// readings go to posKey, negative readings (negated) to negKey.
func split(posKey, negKey string, offset uint16, scale float64) Register {
	return Register{
		Keys:   []string{posKey, negKey},
		Offset: offset,
		Type:   RegInt16,
		decode: func(raw int64, data map[string]any) {
			var pos, neg int64
			if raw > 0 {
				pos = raw
			} else if raw < 0 {
				neg = -raw
			}
			data[posKey] = scaled(pos, scale)
			data[negKey] = scaled(neg, scale)
		},
	}
}

// scaled returns an int for unscaled registers and a float64 rounded to the
// precision of the scale otherwise.
func scaled(raw int64, scale float64) any {
	if scale == 1 {
		return int(raw)
	}
	decimals := math.Max(0, math.Round(-math.Log10(scale)))
	pow := math.Pow(10, decimals)
	return math.Round(float64(raw)*scale*pow) / pow
}

// CheckInverterIdentity rejects an inverter block whose enum, ratio and
// digital I/O registers hold values the register map cannot produce.
func CheckInverterIdentity(words []uint16) error {
	if len(words) < int(inverterBlock.Count()) {
		return fmt.Errorf("ingeteam: inverter block too short: %d words", len(words))
	}
	if _, ok := InverterStatus[words[0]]; !ok {
		return fmt.Errorf("ingeteam: unexpected inverter status %d, is this an Ingeteam inverter?", words[0])
	}
	if pf := int16(words[8]); pf < -1000 || pf > 1000 {
		return fmt.Errorf("ingeteam: power factor register out of range: %d", pf)
	}
	if words[9] > 10000 {
		return fmt.Errorf("ingeteam: active power reduction above 100%%: %d", words[9])
	}
	if _, ok := APReductionReasons[words[10]]; !ok {
		return fmt.Errorf("ingeteam: unexpected active power reduction reason %d", words[10])
	}
	for offset := 35; offset <= 39; offset++ {
		if words[offset] > 1 {
			return fmt.Errorf("ingeteam: digital i/o register %d is not boolean: %d", offset, words[offset])
		}
	}
	return nil
}

// The offsets below are provisional until checked against a live unit.
// CheckInverterIdentity guards against publishing a mismatched layout.
var inverterBlock = RegisterBlock{
	Name:  BLOCK_INVERTER,
	Start: 0,
	Registers: []Register{
		enum("status", 0, InverterStatus),
		number("stop_code", 1, RegUint16, 1),
		number("alarm_code", 2, RegUint16, 1),
		number("waiting_time", 3, RegUint16, 1),
		number("total_operation_time", 4, RegUint32, 1),
		number("active_power", 6, RegInt16, 1),
		number("reactive_power", 7, RegInt16, 1),
		number("power_factor", 8, RegInt16, 0.001),
		number("ap_reduction_ratio", 9, RegUint16, 0.01),
		enum("ap_reduction_reason", 10, APReductionReasons),
		number("reactive_setpoint_type", 11, RegUint16, 1),
		number("total_loads_power", 12, RegInt16, 1),
		number("cl_active_power", 13, RegInt16, 1),
		number("cl_voltage", 14, RegUint16, 0.1),
		number("cl_current", 15, RegInt16, 0.01),
		number("cl_freq", 16, RegUint16, 0.01),
		number("cl_reactive_power", 17, RegInt16, 1),
		number("pv1_power", 18, RegUint16, 1),
		number("pv1_voltage", 19, RegUint16, 1),
		number("pv1_current", 20, RegUint16, 0.01),
		number("pv2_power", 21, RegUint16, 1),
		number("pv2_voltage", 22, RegUint16, 1),
		number("pv2_current", 23, RegUint16, 0.01),
		number("pv_internal_total_power", 24, RegUint16, 1),
		number("pv_total_power", 25, RegUint16, 1),
		number("external_pv_power", 26, RegInt16, 1),
		number("ev_power", 27, RegInt16, 1),
		number("dc_bus_voltage", 28, RegUint16, 1),
		number("rms_diff_current", 29, RegUint16, 1),
		number("temp_pcb", 30, RegInt16, 0.1),
		number("temp_mod_1", 31, RegInt16, 0.1),
		number("temp_mod_2", 32, RegInt16, 0.1),
		number("positive_isolation_resistance", 33, RegUint16, 1),
		number("negative_isolation_resistance", 34, RegUint16, 1),
		enum("di_2_status", 35, BooleanStatus),
		enum("di_3_status", 36, BooleanStatus),
		enum("di_drm_status", 37, BooleanStatus),
		enum("do_1_status", 38, BooleanStatus),
		enum("do_2_status", 39, BooleanStatus),
	},
}

var batteryBlock = RegisterBlock{
	Name:  BLOCK_BATTERY,
	Start: 100,
	Registers: []Register{
		enum("battery_status", 0, BatteryStatus),
		number("battery_state_of_charge", 1, RegUint16, 1),
		// positive when discharging
		split("battery_discharging_power", "battery_charging_power", 2, 1),
		number("battery_voltage", 3, RegUint16, 0.1),
		number("battery_current", 4, RegInt16, 0.01),
		number("battery_temp", 5, RegInt16, 0.1),
		number("battery_state_of_health", 6, RegUint16, 1),
		number("battery_charging_voltage", 7, RegUint16, 0.1),
		number("battery_discharging_voltage", 8, RegUint16, 0.1),
		number("battery_charging_current_max", 9, RegUint16, 0.01),
		number("battery_discharging_current_max", 10, RegUint16, 0.01),
		bitmask("battery_bms_alarm", 11, BatteryBMSAlarms, BitmaskNoAlarmsStr),
		enum("battery_discharge_limitation_reason", 12, BatteryLimitationReasons),
		number("battery_voltage_internal", 13, RegUint16, 0.1),
		number("battery_bms_warnings", 14, RegUint16, 1),
		number("battery_bms_errors", 15, RegUint16, 1),
		number("battery_bms_faults", 16, RegUint16, 1),
		bitmask("battery_bms_flags", 17, BatteryBMSFlags, BitmaskNoFlagsStr),
	},
}

var meterBlock = RegisterBlock{
	Name:  BLOCK_METER,
	Start: 200,
	Registers: []Register{
		// positive when importing from the grid
		split("em_active_power", "em_active_power_returned", 0, 1),
		number("em_voltage", 1, RegUint16, 0.1),
		number("em_freq", 2, RegUint16, 0.01),
		number("em_reactive_power", 3, RegInt16, 1),
		number("im_voltage", 4, RegUint16, 0.1),
		number("im_current", 5, RegInt16, 0.01),
		number("im_freq", 6, RegUint16, 0.01),
		number("im_active_power", 7, RegInt16, 1),
		number("im_reactive_power", 8, RegInt16, 1),
		number("im_power_factor", 9, RegInt16, 0.001),
	},
}

// RegisterBlocks returns the blocks to poll for the enabled feature groups.
func RegisterBlocks(readBattery, readMeter bool) []RegisterBlock {
	blocks := []RegisterBlock{inverterBlock}
	if readBattery {
		blocks = append(blocks, batteryBlock)
	}
	if readMeter {
		blocks = append(blocks, meterBlock)
	}
	return blocks
}

// RegisterKeys lists every sensor key produced by the given blocks.
func RegisterKeys(blocks []RegisterBlock) []string {
	var keys []string
	for _, b := range blocks {
		for _, reg := range b.Registers {
			keys = append(keys, reg.Keys...)
		}
	}
	return keys
}
