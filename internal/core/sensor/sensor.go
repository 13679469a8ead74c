package sensor

import (
	"fmt"
	"strconv"
	"sync"

	. "github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"
)

const DOMAIN = "ingeteam_modbus"

// UpdateListener is notified, without payload, after every hub refresh.
type UpdateListener interface {
	OnDataUpdated()
}

// Hub is the shared data source the sensors read from.
type Hub interface {
	Name() string
	Get(key string) (any, bool)
	ReadBattery() bool
	ReadMeter() bool
	AddSensorListener(listener UpdateListener)
	RemoveSensorListener(listener UpdateListener)
}

// StateWriter re-renders a sensor by reading its current value.
type StateWriter interface {
	WriteState(sensor *Sensor)
}

// Platform registers new sensors with the host and renders their state.
type Platform interface {
	StateWriter
	AddEntities(sensors []*Sensor)
}

type DeviceInfo struct {
	Identifiers  []string
	Name         string
	Manufacturer string
}

type Sensor struct {
	hub         Hub
	device      DeviceInfo
	description EntityDescription

	// attachMu serializes attach and detach including the hub call.
	attachMu sync.Mutex
	mu       sync.Mutex
	writer   StateWriter
}

func NewSensor(hub Hub, device DeviceInfo, description EntityDescription) *Sensor {
	return &Sensor{
		hub:         hub,
		device:      device,
		description: description,
	}
}

func (s *Sensor) UniqueID() string {
	return fmt.Sprintf("%s_%s", s.hub.Name(), s.description.Key)
}

func (s *Sensor) Description() EntityDescription {
	return s.description
}

func (s *Sensor) Device() DeviceInfo {
	return s.device
}

// NativeValue returns the current hub value for the sensor key. The boolean is
// false when the hub holds no value for the key.
func (s *Sensor) NativeValue() (any, bool) {
	value, ok := s.hub.Get(s.description.Key)
	if !ok {
		return nil, false
	}
	if s.description.DeviceClass == DEVICE_CLASS_POWER_FACTOR {
		switch v := value.(type) {
		case float64:
			return roundPowerFactor(v), true
		case float32:
			return roundPowerFactor(float64(v)), true
		}
	}
	return value, true
}

// roundPowerFactor rounds the exact binary value to 3 decimals, half to even.
func roundPowerFactor(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// AddedToHost subscribes the sensor to hub updates. Calling it again only
// replaces the writer.
func (s *Sensor) AddedToHost(writer StateWriter) {
	s.attachMu.Lock()
	defer s.attachMu.Unlock()
	s.mu.Lock()
	attached := s.writer != nil
	s.writer = writer
	s.mu.Unlock()
	if !attached {
		s.hub.AddSensorListener(s)
	}
}

// WillRemoveFromHost unsubscribes the sensor from hub updates.
func (s *Sensor) WillRemoveFromHost() {
	s.attachMu.Lock()
	defer s.attachMu.Unlock()
	s.mu.Lock()
	attached := s.writer != nil
	s.writer = nil
	s.mu.Unlock()
	if attached {
		s.hub.RemoveSensorListener(s)
	}
}

func (s *Sensor) OnDataUpdated() {
	s.mu.Lock()
	writer := s.writer
	s.mu.Unlock()
	if writer != nil {
		writer.WriteState(s)
	}
}

func NewDeviceInfo(hub Hub) DeviceInfo {
	return DeviceInfo{
		Identifiers:  []string{DOMAIN, hub.Name()},
		Name:         hub.Name(),
		Manufacturer: ingeteam_modbus.ATTR_MANUFACTURER,
	}
}

// Setup creates one sensor per enabled description group and hands them to the platform.
func Setup(hub Hub, platform Platform) []*Sensor {
	device := NewDeviceInfo(hub)
	descriptions := Descriptions(hub.ReadBattery(), hub.ReadMeter())
	sensors := make([]*Sensor, 0, len(descriptions))
	for _, d := range descriptions {
		sensors = append(sensors, NewSensor(hub, device, d))
	}
	platform.AddEntities(sensors)
	return sensors
}
