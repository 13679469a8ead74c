package ingeteam_modbus

import "time"

func CreateTestInverterModbusReader() (InverterModbusReader, error) {
	return &TestInverterModbusReader{}, nil
}

// TestInverterModbusReader decodes canned register dumps through the real
// register map.
type TestInverterModbusReader struct {
	// Fail makes ReadData return this error when set.
	Fail error
	// Delay is added to every ReadData call.
	Delay time.Duration
}

var TestInverterWords = []uint16{
	// status: On-grid, stop code, alarm code, waiting time
	3, 0, 0, 0,
	// total operation time: 74565 h
	0x0001, 0x2345,
	// active power, reactive power -50 var, power factor 0.987
	2350, 0xFFCE, 987,
	// ap reduction 100.00 %, reason Self-Consumption Mode, reactive set-point type
	10000, 11, 0,
	// total loads power, critical loads power
	1820, 1750,
	// critical loads 231.2 V, 7.61 A, 50.00 Hz, 12 var
	2312, 761, 5000, 12,
	// pv1 and pv2 power, voltage, current
	1510, 355, 425,
	1490, 351, 424,
	// pv internal total, pv total, external pv, ev
	3000, 3000, 0, 0,
	// dc bus voltage, rms differential current
	412, 14,
	// temperatures 45.2, 47.8, 47.1 C
	452, 478, 471,
	// isolation resistances
	2000, 2000,
	// digital i/o
	0, 1, 0, 1, 0,
}

var TestBatteryWords = []uint16{
	// status Constant Current Charging, soc, power -600 W (charging)
	2, 63, 0xFDA8,
	// 51.4 V, -18.75 A, 24.1 C, soh
	514, 0xF8AD, 241, 98,
	// charging / discharging voltage
	560, 450,
	// max charging / discharging current 50.00 A
	5000, 5000,
	// alarms: High Current Charge | High Temperature, limitation: none
	0x0009, 0,
	// internal voltage 51.3 V
	513,
	// warnings, errors, faults, flags
	0, 0, 0, 0,
}

var TestMeterWords = []uint16{
	// grid power -200 W (exporting), 233.0 V, 49.98 Hz, -10 var
	0xFF38, 2330, 4998, 0xFFF6,
	// internal meter 232.0 V, 10.02 A, 50.01 Hz, 2324 W, 40 var
	2320, 1002, 5001, 2324, 40,
	// internal power factor -0.997
	0xFC1B,
}

func (inv *TestInverterModbusReader) Open() error {
	return nil
}

func (inv *TestInverterModbusReader) Close() error {
	return nil
}

func (inv *TestInverterModbusReader) Validate() error {
	return CheckInverterIdentity(TestInverterWords)
}

func (inv *TestInverterModbusReader) GetInfo() (*InverterInfo, error) {
	if inv.Fail != nil {
		return nil, inv.Fail
	}
	return &InverterInfo{
		Manufacturer: ATTR_MANUFACTURER,
		Host:         "test",
		Port:         DEFAULT_MODBUS_PORT,
		UnitId:       DEFAULT_MODBUS_ADDRESS,
		Status:       LookupCode(InverterStatus, TestInverterWords[0]),
	}, nil
}

func (inv *TestInverterModbusReader) ReadData(readBattery, readMeter bool) (map[string]any, error) {
	time.Sleep(inv.Delay)
	if inv.Fail != nil {
		return nil, inv.Fail
	}
	data := make(map[string]any)
	inverterBlock.Decode(TestInverterWords, data)
	if readBattery {
		batteryBlock.Decode(TestBatteryWords, data)
	}
	if readMeter {
		meterBlock.Decode(TestMeterWords, data)
	}
	return data, nil
}
