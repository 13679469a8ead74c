package sensor

import (
	. "github.com/berfenger/ingeteam2mqtt/internal/core/domain"

	"github.com/samber/lo"
)

// EntityDescription is the static metadata of one measurable quantity.
type EntityDescription struct {
	Key         string
	Name        string
	Icon        string
	Unit        string
	DeviceClass string
	StateClass  string
	// nil means enabled
	EnabledByDefault *bool
}

func (d EntityDescription) Enabled() bool {
	return d.EnabledByDefault == nil || *d.EnabledByDefault
}

var disabled = lo.ToPtr(false)

var SensorDescriptions = []EntityDescription{
	// Inverter status
	{Key: "status", Name: "Status", Icon: "mdi:solar-power"},
	{Key: "stop_code", Name: "Stop Event Code", Icon: "mdi:alert-circle-outline", EnabledByDefault: disabled},
	{Key: "alarm_code", Name: "Alarm Code", Icon: "mdi:alert-circle-outline", EnabledByDefault: disabled},
	{Key: "waiting_time", Name: "Waiting Time to Connect", Unit: UNIT_SECONDS, Icon: "mdi:timer-sand"},
	{Key: "total_operation_time", Name: "Total Operation Time", Unit: UNIT_HOURS, Icon: "mdi:clock-outline", EnabledByDefault: lo.ToPtr(true)},

	// Inverter power
	{Key: "active_power", Name: "Active Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "reactive_power", Name: "Reactive Power", Unit: UNIT_VOLT_AMPERE_REACTIVE, DeviceClass: DEVICE_CLASS_REACTIVE_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "power_factor", Name: "Power Factor Cosφ", DeviceClass: DEVICE_CLASS_POWER_FACTOR, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "ap_reduction_ratio", Name: "Active Power Reduction Ratio", Unit: UNIT_PERCENTAGE, Icon: "mdi:arrow-collapse-down"},
	{Key: "ap_reduction_reason", Name: "Active Power Reduction Reason", Icon: "mdi:information-outline"},
	{Key: "reactive_setpoint_type", Name: "Reactive Power Set-Point Type", Icon: "mdi:information-outline"},

	// Critical loads
	{Key: "total_loads_power", Name: "Total Loads Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:power-plug"},
	{Key: "cl_active_power", Name: "Critical Loads Active Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "cl_voltage", Name: "Critical Loads Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "cl_current", Name: "Critical Loads Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "cl_freq", Name: "Critical Loads Frequency", Unit: UNIT_HERTZ, DeviceClass: DEVICE_CLASS_FREQUENCY, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "cl_reactive_power", Name: "Critical Loads Reactive Power", Unit: UNIT_VOLT_AMPERE_REACTIVE, DeviceClass: DEVICE_CLASS_REACTIVE_POWER, StateClass: STATE_CLASS_MEASUREMENT},

	// PV
	{Key: "pv1_power", Name: "PV1 Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:solar-power"},
	{Key: "pv1_voltage", Name: "PV1 Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "pv1_current", Name: "PV1 Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "pv2_power", Name: "PV2 Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:solar-power"},
	{Key: "pv2_voltage", Name: "PV2 Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "pv2_current", Name: "PV2 Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "pv_internal_total_power", Name: "PV Internal Total Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:solar-power"},
	{Key: "pv_total_power", Name: "PV Total Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:solar-power"},
	{Key: "external_pv_power", Name: "PV External Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, EnabledByDefault: disabled},
	{Key: "ev_power", Name: "EV Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:ev-station"},

	// Diagnostics
	{Key: "dc_bus_voltage", Name: "DC Bus Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "rms_diff_current", Name: "RMS Differential Current", Unit: UNIT_MILLIAMPERE, Icon: "mdi:current-ac"},
	{Key: "temp_pcb", Name: "Internal Temperature", Unit: UNIT_CELSIUS, DeviceClass: DEVICE_CLASS_TEMPERATURE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "temp_mod_1", Name: "Temperature Module 1", Unit: UNIT_CELSIUS, DeviceClass: DEVICE_CLASS_TEMPERATURE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "temp_mod_2", Name: "Temperature Module 2", Unit: UNIT_CELSIUS, DeviceClass: DEVICE_CLASS_TEMPERATURE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "positive_isolation_resistance", Name: "Positive Isolation Resistance", Unit: UNIT_KILOOHM, Icon: "mdi:check-network-outline", EnabledByDefault: disabled},
	{Key: "negative_isolation_resistance", Name: "Negative Isolation Resistance", Unit: UNIT_KILOOHM, Icon: "mdi:close-network-outline", EnabledByDefault: disabled},

	// Digital I/O
	{Key: "di_2_status", Name: "Digital Input 2 Status", Icon: "mdi:electric-switch"},
	{Key: "di_3_status", Name: "Digital Input 3 Status", Icon: "mdi:electric-switch"},
	{Key: "di_drm_status", Name: "Digital Input DRM0 Status", Icon: "mdi:electric-switch"},
	{Key: "do_1_status", Name: "Digital Output 1 Status", Icon: "mdi:electric-switch"},
	{Key: "do_2_status", Name: "Digital Output 2 Status", Icon: "mdi:electric-switch"},
}

var BatteryDescriptions = []EntityDescription{
	{Key: "battery_status", Name: "Battery Status", Icon: "mdi:battery"},
	{Key: "battery_state_of_charge", Name: "Battery State of Charge", Unit: UNIT_PERCENTAGE, DeviceClass: DEVICE_CLASS_BATTERY, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_charging_power", Name: "Battery Charging Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_discharging_power", Name: "Battery Discharging Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_voltage", Name: "Battery Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_current", Name: "Battery Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_temp", Name: "Battery Temperature", Unit: UNIT_CELSIUS, DeviceClass: DEVICE_CLASS_TEMPERATURE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "battery_state_of_health", Name: "Battery State of Health", Unit: UNIT_PERCENTAGE, Icon: "mdi:battery-heart-variant"},
	{Key: "battery_charging_voltage", Name: "Battery Charging Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE},
	{Key: "battery_discharging_voltage", Name: "Battery Discharging Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE},
	{Key: "battery_charging_current_max", Name: "Battery Max. Charging Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT},
	{Key: "battery_discharging_current_max", Name: "Battery Max. Discharging Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT},
	{Key: "battery_bms_alarm", Name: "Battery BMS Alarm", Icon: "mdi:battery-alert"},
	{Key: "battery_discharge_limitation_reason", Name: "Battery Discharge Limitation Reason", Icon: "mdi:information-outline"},
	{Key: "battery_voltage_internal", Name: "Battery Voltage Internal Sensor", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE},
	{Key: "battery_bms_warnings", Name: "Battery BMS Warnings", Icon: "mdi:battery-alert"},
	{Key: "battery_bms_errors", Name: "Battery BMS Errors", Icon: "mdi:battery-alert"},
	{Key: "battery_bms_faults", Name: "Battery BMS Faults", Icon: "mdi:battery-alert"},
	{Key: "battery_bms_flags", Name: "Battery BMS Flags", Icon: "mdi:flag"},
}

var MeterDescriptions = []EntityDescription{
	// External meter
	{Key: "em_active_power", Name: "Grid Consumption Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "em_active_power_returned", Name: "Grid Export Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "em_voltage", Name: "Grid Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "em_freq", Name: "Grid Frequency", Unit: UNIT_HERTZ, DeviceClass: DEVICE_CLASS_FREQUENCY, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "em_reactive_power", Name: "Grid Reactive Power", Unit: UNIT_VOLT_AMPERE_REACTIVE, DeviceClass: DEVICE_CLASS_REACTIVE_POWER, StateClass: STATE_CLASS_MEASUREMENT, EnabledByDefault: disabled},
	// Internal meter
	{Key: "im_voltage", Name: "Internal Meter Voltage", Unit: UNIT_VOLT, DeviceClass: DEVICE_CLASS_VOLTAGE, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "im_current", Name: "Internal Meter Current", Unit: UNIT_AMPERE, DeviceClass: DEVICE_CLASS_CURRENT, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "im_freq", Name: "Internal Meter Frequency", Unit: UNIT_HERTZ, DeviceClass: DEVICE_CLASS_FREQUENCY, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "im_active_power", Name: "Internal Meter Active Power", Unit: UNIT_WATT, DeviceClass: DEVICE_CLASS_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "im_reactive_power", Name: "Internal Meter Reactive Power", Unit: UNIT_VOLT_AMPERE_REACTIVE, DeviceClass: DEVICE_CLASS_REACTIVE_POWER, StateClass: STATE_CLASS_MEASUREMENT},
	{Key: "im_power_factor", Name: "Internal Power Factor Cosφ", DeviceClass: DEVICE_CLASS_POWER_FACTOR, StateClass: STATE_CLASS_MEASUREMENT},
}

// Descriptions returns the inverter group plus the battery and meter groups
// when enabled, in that order.
func Descriptions(readBattery, readMeter bool) []EntityDescription {
	descriptions := append([]EntityDescription{}, SensorDescriptions...)
	if readBattery {
		descriptions = append(descriptions, BatteryDescriptions...)
	}
	if readMeter {
		descriptions = append(descriptions, MeterDescriptions...)
	}
	return descriptions
}
