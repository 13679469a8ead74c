package hub

import (
	"sync/atomic"
	"testing"

	"github.com/berfenger/ingeteam2mqtt/internal/config"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"
	"github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"

	"github.com/stretchr/testify/assert"
)

type countingListener struct {
	calls atomic.Int32
}

func (l *countingListener) OnDataUpdated() {
	l.calls.Add(1)
}

type recordingPlatform struct {
	sensors []*sensor.Sensor
	values  map[string]any
}

func (p *recordingPlatform) AddEntities(sensors []*sensor.Sensor) {
	p.sensors = append(p.sensors, sensors...)
}

func (p *recordingPlatform) WriteState(s *sensor.Sensor) {
	if v, ok := s.NativeValue(); ok {
		p.values[s.UniqueID()] = v
	}
}

func testHubConfig() config.HubConfig {
	return config.HubConfig{
		Name:                "ingeteam",
		ReadBattery:         true,
		ReadMeter:           true,
		ScanIntervalSeconds: 10,
	}
}

func TestHubUpdate(t *testing.T) {

	assert := assert.New(t)

	hub := NewHub(testHubConfig())
	assert.Equal("ingeteam", hub.Name())
	assert.True(hub.ReadBattery())
	assert.True(hub.ReadMeter())
	assert.True(hub.LastUpdate().IsZero())

	_, ok := hub.Get("active_power")
	assert.False(ok)

	data := map[string]any{"active_power": 2350}
	hub.Update(data)
	v, ok := hub.Get("active_power")
	assert.True(ok)
	assert.Equal(2350, v)
	assert.False(hub.LastUpdate().IsZero())

	// the snapshot is a copy
	data["active_power"] = 0
	snapshot := hub.Data()
	snapshot["status"] = "Error"
	v, _ = hub.Get("active_power")
	assert.Equal(2350, v)
	_, ok = hub.Get("status")
	assert.False(ok)

	hub.Update(nil)
	assert.Empty(hub.Data())
}

func TestHubListenersIdempotent(t *testing.T) {

	assert := assert.New(t)

	hub := NewHub(testHubConfig())
	listener := &countingListener{}

	hub.AddSensorListener(listener)
	hub.AddSensorListener(listener)
	assert.Equal(1, hub.ListenerCount())

	hub.Update(map[string]any{"status": "On-grid"})
	assert.Equal(int32(1), listener.calls.Load())

	hub.RemoveSensorListener(listener)
	hub.RemoveSensorListener(listener)
	assert.Equal(0, hub.ListenerCount())

	hub.Update(map[string]any{"status": "Error"})
	assert.Equal(int32(1), listener.calls.Load())

	// removing an unknown listener is a no-op
	hub.RemoveSensorListener(&countingListener{})
}

func TestHubDrivesSensors(t *testing.T) {

	assert := assert.New(t)

	conf := testHubConfig()
	conf.ReadMeter = false
	hub := NewHub(conf)
	platform := &recordingPlatform{values: map[string]any{}}

	sensors := sensor.Setup(hub, platform)
	for _, s := range sensors {
		s.AddedToHost(platform)
	}
	assert.Equal(len(sensors), hub.ListenerCount())

	reader, _ := ingeteam_modbus.CreateTestInverterModbusReader()
	data, err := reader.ReadData(hub.ReadBattery(), hub.ReadMeter())
	if err != nil {
		t.Error(err)
		return
	}
	hub.Update(data)

	assert.Len(platform.values, len(sensors))
	assert.Equal("On-grid", platform.values["ingeteam_status"])
	assert.Equal(0.987, platform.values["ingeteam_power_factor"])
	assert.Equal(600, platform.values["ingeteam_battery_charging_power"])
	_, ok := platform.values["ingeteam_em_active_power"]
	assert.False(ok)

	for _, s := range sensors {
		s.WillRemoveFromHost()
	}
	assert.Equal(0, hub.ListenerCount())
}
