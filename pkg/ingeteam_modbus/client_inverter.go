package ingeteam_modbus

import (
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
	"go.uber.org/zap"
)

type IngeteamModbusReader struct {
	ModbusClient

	host   string
	port   uint
	unitId uint8
	logger *zap.Logger
}

func (inv *IngeteamModbusReader) Open() error {
	if err := inv.client.Open(); err != nil {
		return err
	}
	return inv.Validate()
}

func (inv IngeteamModbusReader) Close() error {
	return inv.client.Close()
}

// Validate reads the inverter block and checks that it fits the register map.
func (inv IngeteamModbusReader) Validate() error {
	words, err := inv.readRegisters(inverterBlock.Start, inverterBlock.Count(), modbus.INPUT_REGISTER)
	if err != nil {
		return err
	}
	return CheckInverterIdentity(words)
}

func (inv IngeteamModbusReader) GetInfo() (*InverterInfo, error) {
	status, err := inv.readRegister(inverterBlock.Start, modbus.INPUT_REGISTER)
	if err != nil {
		return nil, err
	}
	return &InverterInfo{
		Manufacturer: ATTR_MANUFACTURER,
		Host:         inv.host,
		Port:         inv.port,
		UnitId:       inv.unitId,
		Status:       LookupCode(InverterStatus, status),
	}, nil
}

func (inv IngeteamModbusReader) ReadData(readBattery, readMeter bool) (map[string]any, error) {
	data := make(map[string]any)
	for _, block := range RegisterBlocks(readBattery, readMeter) {
		if err := inv.readBlock(block, data); err != nil {
			return nil, fmt.Errorf("ingeteam: read %s block: %w", block.Name, err)
		}
		inv.logger.Debug("modbus block read", zap.String("block", block.Name), zap.Uint16("start", block.Start))
	}
	return data, nil
}

func debugLoggerInstrumentation(logger *zap.Logger) *ModbusInstrument {
	return &ModbusInstrument{
		RecordTime: func(fnName string, readTime time.Duration) {
			logger.Debug("modbus timing", zap.String("fn", fnName), zap.Int64("millis", readTime.Milliseconds()))
		},
	}
}

func CreateInverterModbusReader(ip string, port uint, unitId uint8, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (InverterModbusReader, error) {
	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s:%d", ip, port),
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}

	// instrumentation
	var inst []ModbusInstrument
	logInst := debugLoggerInstrumentation(logger.With(zap.String("target", "inverter"), zap.Uint8("unit", unitId)))
	if logInst != nil {
		inst = append(inst, *logInst)
	}
	if instrumentation != nil {
		inst = append(inst, *instrumentation)
	}

	if unitId > 0 {
		err = client.SetUnitId(unitId)
		if err != nil {
			return nil, err
		}
	}

	inv := IngeteamModbusReader{
		ModbusClient: ModbusClient{
			client:     client,
			instrument: inst,
		},
		host:   ip,
		port:   port,
		unitId: unitId,
		logger: logger,
	}
	return &inv, nil
}
