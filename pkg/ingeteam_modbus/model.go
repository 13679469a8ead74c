package ingeteam_modbus

const (
	ATTR_MANUFACTURER      = "Ingeteam"
	DEFAULT_MODBUS_PORT    = 502
	DEFAULT_MODBUS_ADDRESS = 1
)

type InverterInfo struct {
	Manufacturer string
	Host         string
	Port         uint
	UnitId       uint8
	Status       string
}

type InverterModbusReader interface {
	Open() error
	Close() error
	Validate() error
	GetInfo() (*InverterInfo, error)
	// ReadData reads the inverter block and, when enabled, the battery and
	// meter blocks, returning decoded values keyed by sensor key.
	ReadData(readBattery, readMeter bool) (map[string]any, error)
}
