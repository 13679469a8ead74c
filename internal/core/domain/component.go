package domain

const (
	SENSOR_ID_BRIDGE_STATE        = "bridge"
	STATE_CLASS_MEASUREMENT       = "measurement"
	STATE_CLASS_TOTAL_INCREASING  = "total_increasing"
	DEVICE_CLASS_BATTERY          = "battery"
	DEVICE_CLASS_CURRENT          = "current"
	DEVICE_CLASS_FREQUENCY        = "frequency"
	DEVICE_CLASS_POWER            = "power"
	DEVICE_CLASS_POWER_FACTOR     = "power_factor"
	DEVICE_CLASS_REACTIVE_POWER   = "reactive_power"
	DEVICE_CLASS_TEMPERATURE      = "temperature"
	DEVICE_CLASS_VOLTAGE          = "voltage"
	DEVICE_CLASS_CONNECTIVITY     = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC       = "diagnostic"
	SENSOR_TYPE_SENSOR            = "sensor"
	SENSOR_TYPE_BINARY            = "binary_sensor"
	UNIT_WATT                     = "W"
	UNIT_VOLT_AMPERE_REACTIVE     = "var"
	UNIT_VOLT                     = "V"
	UNIT_AMPERE                   = "A"
	UNIT_MILLIAMPERE              = "mA"
	UNIT_HERTZ                    = "Hz"
	UNIT_CELSIUS                  = "°C"
	UNIT_PERCENTAGE               = "%"
	UNIT_SECONDS                  = "s"
	UNIT_HOURS                    = "h"
	UNIT_KILOOHM                  = "kOhm"
)

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string // measurement, total_increasing
	DeviceClass       string // voltage, current, power, power_factor...
	EntityCategory    string // diagnostic, config, nil
	EnabledByDefault  *bool
	Icon              string
}
