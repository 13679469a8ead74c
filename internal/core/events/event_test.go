package events

import (
	"testing"

	. "github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"

	"github.com/stretchr/testify/assert"
)

type staticHub struct {
	data map[string]any
}

func (h staticHub) Name() string                               { return "Casa Solar" }
func (h staticHub) ReadBattery() bool                          { return true }
func (h staticHub) ReadMeter() bool                            { return true }
func (h staticHub) AddSensorListener(sensor.UpdateListener)    {}
func (h staticHub) RemoveSensorListener(sensor.UpdateListener) {}

func (h staticHub) Get(key string) (any, bool) {
	v, ok := h.data[key]
	return v, ok
}

type nopPlatform struct{}

func (nopPlatform) AddEntities([]*sensor.Sensor) {}
func (nopPlatform) WriteState(*sensor.Sensor)    {}

func TestSensorValueToUpdateEvent(t *testing.T) {

	assert := assert.New(t)

	assert.Equal(FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "a"},
		Value:                  231.2,
		Decimals:               2,
	}, SensorValueToUpdateEvent("a", 231.2, true, 2))

	assert.Equal(FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "a"},
		Value:                  2350,
	}, SensorValueToUpdateEvent("a", 2350, true, 2))

	assert.Equal(TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "a"},
		Value:                  "On-grid",
	}, SensorValueToUpdateEvent("a", "On-grid", true, 2))

	assert.Equal(TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "a"},
		Value:                  "On",
	}, SensorValueToUpdateEvent("a", true, true, 2))

	assert.Equal(UnknownSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "a"},
	}, SensorValueToUpdateEvent("a", nil, false, 2))

	assert.Equal("a", SensorValueToUpdateEvent("a", nil, false, 2).SensorId())
}

func TestSensorToUpdateEvent(t *testing.T) {

	assert := assert.New(t)

	hub := staticHub{data: map[string]any{
		"power_factor": 0.98765,
		"cl_voltage":   231.2,
	}}
	sensors := sensor.Setup(hub, nopPlatform{})
	byKey := map[string]*sensor.Sensor{}
	for _, s := range sensors {
		byKey[s.Description().Key] = s
	}

	assert.Equal(FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "Casa Solar_power_factor"},
		Value:                  0.988,
		Decimals:               3,
	}, SensorToUpdateEvent(byKey["power_factor"]))

	assert.Equal(FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: "Casa Solar_cl_voltage"},
		Value:                  231.2,
		Decimals:               2,
	}, SensorToUpdateEvent(byKey["cl_voltage"]))

	_, unknown := SensorToUpdateEvent(byKey["status"]).(UnknownSensorUpdateEvent)
	assert.True(unknown)
}

func TestInverterSensors(t *testing.T) {

	assert := assert.New(t)

	hub := staticHub{}
	sensors := sensor.Setup(hub, nopPlatform{})
	bridge := BridgeDevice("ingeteam")
	device := InverterDevice(sensors[0].Device(), bridge.Id)

	assert.Equal("ingeteam_casa-solar", device.Id)
	assert.Equal("Ingeteam", device.Manufacturer)
	assert.Equal(bridge.Id, device.ViaDevice)

	generic := InverterSensors(device, sensors)
	assert.Len(generic, 69)
	assert.Equal(device, generic[0].Device)
	assert.Equal(IdDevice(device), generic[1].Device)
	assert.Equal("Casa Solar_status", generic[0].UniqueId)
	assert.Equal(SENSOR_TYPE_SENSOR, generic[0].SensorType)

	stopCode := generic[1]
	assert.Equal("Stop Event Code", stopCode.Name)
	if assert.NotNil(stopCode.EnabledByDefault) {
		assert.False(*stopCode.EnabledByDefault)
	}
	assert.Nil(generic[0].EnabledByDefault)
}

func TestBridgeDevice(t *testing.T) {

	assert := assert.New(t)

	a := BridgeDevice("ingeteam")
	b := BridgeDevice("ingeteam2")
	assert.NotEqual(a.Id, b.Id)
	assert.Equal(a, BridgeDevice("ingeteam"))

	sensors := BridgeSensors(a)
	assert.Len(sensors, 1)
	assert.Equal(SENSOR_ID_BRIDGE_STATE, sensors[0].Id)
	assert.Equal(SENSOR_TYPE_BINARY, sensors[0].SensorType)
}
