package ingeteam_modbus

import (
	"fmt"
	"math/bits"
	"strings"
)

// CodeTable maps a register code (enum value or single bit) to its display text.
type CodeTable map[uint16]string

const (
	CodeUnknownStr      = "Unknown"
	BitmaskNoAlarmsStr  = "No alarms"
	BitmaskNoFlagsStr   = "No flags"
	bitmaskSeparatorStr = ", "
)

var BooleanStatus = CodeTable{
	0: "Off",
	1: "On",
}

var InverterStatus = CodeTable{
	0:  "Stopped",
	1:  "Starting",
	2:  "Off-grid",
	3:  "On-grid",
	4:  "On-grid (Standby Battery)",
	5:  "Waiting to connect to Grid",
	6:  "Critical Loads Bypassed",
	7:  "Emergency Charge from PV",
	8:  "Emergency Charge from Grid",
	9:  "Locked - waiting for Reset",
	10: "Error",
}

var BatteryStatus = CodeTable{
	0:  "Standby",
	1:  "Discharging",
	2:  "Constant Current Charging",
	3:  "Constant Voltage Charging",
	4:  "Floating",
	5:  "Equalizing",
	6:  "BMS Communication Error",
	7:  "Not Configured",
	8:  "Capacity Calibration (Step 1)",
	9:  "Capacity Calibration (Step 2)",
	10: "Standby Manual",
}

// BatteryBMSAlarms is keyed by bit value, not by enum code.
var BatteryBMSAlarms = CodeTable{
	1 << 0: "High Current Charge",
	1 << 1: "High Voltage",
	1 << 2: "Low Voltage",
	1 << 3: "High Temperature",
	1 << 4: "Low Temperature",
	1 << 5: "BMS Internal",
	1 << 6: "Cell Imbalance",
	1 << 7: "High Current Discharge",
	1 << 8: "System BMS Error",
}

// BatteryBMSFlags is keyed by bit value, not by enum code.
var BatteryBMSFlags = CodeTable{
	1 << 0: "Stop Charge",
	1 << 1: "Stop Discharge",
	1 << 2: "Forced Charge (BMS)",
	1 << 3: "Calibration Needed",
	1 << 4: "Forced Charge (SOC)",
}

var BatteryLimitationReasons = CodeTable{
	0:  "No limitation",
	1:  "Heat Sink Temperature",
	2:  "PT100 Temperature",
	3:  "Low Bus Voltage Protection",
	4:  "Battery Settings",
	5:  "BMS Communication",
	6:  "SOC Max Configured",
	7:  "SOC Min Configured",
	8:  "Maximum Battery Power",
	9:  "Modbus command",
	10: "Digital Input 2",
	11: "Digital Input 3",
	12: "PV Charging scheduling",
	13: "EMS Strategy",
}

var APReductionReasons = CodeTable{
	0:  "No limitation",
	1:  "Communication",
	2:  "PCB Temperature",
	3:  "Heat Sink Temperature",
	4:  "Pac vs Fac Algorithm",
	5:  "Soft Start",
	6:  "Charge Power Configured",
	7:  "PV Surplus injected to the Loads",
	8:  "Pac vs Vac Algorithm",
	9:  "Battery Power Limited",
	10: "AC Grid Power Limited",
	11: "Self-Consumption Mode",
	12: "High Bus Voltage Protection",
	13: "LVRT or HVRT Process",
	14: "Nominal AC Current",
	15: "Grid Consumption Protection",
	16: "PV Surplus Injected to the Grid",
}

// LookupCode returns the text for an enum code, or Unknown(code).
func LookupCode(table CodeTable, code uint16) string {
	if str, ok := table[code]; ok {
		return str
	}
	return fmt.Sprintf("%s(%d)", CodeUnknownStr, code)
}

// DecodeBitmask returns the texts of every bit set in value, lowest bit first.
// Set bits the table does not describe are reported as "Bit <n>".
func DecodeBitmask(table CodeTable, value uint16) []string {
	var texts []string
	for rest := value; rest != 0; rest &= rest - 1 {
		bit := bits.TrailingZeros16(rest)
		if str, ok := table[1<<bit]; ok {
			texts = append(texts, str)
		} else {
			texts = append(texts, fmt.Sprintf("Bit %d", bit))
		}
	}
	return texts
}

func BitmaskString(table CodeTable, value uint16, none string) string {
	texts := DecodeBitmask(table, value)
	if len(texts) == 0 {
		return none
	}
	return strings.Join(texts, bitmaskSeparatorStr)
}
