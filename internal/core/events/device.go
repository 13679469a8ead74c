package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	. "github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gosimple/slug"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("ingeteam_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "ACasal",
		Model:        "ingeteam2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Ingeteam bridge %s", md5HashShort(baseTopic)),
	}
}

func InverterDevice(info sensor.DeviceInfo, viaDevice string) Device {
	return Device{
		Id:           fmt.Sprintf("ingeteam_%s", slug.Make(info.Name)),
		Manufacturer: info.Manufacturer,
		Name:         info.Name,
		ViaDevice:    viaDevice,
	}
}

// IdDevice strips a device down to the fields HA needs to link an entity to an
// already announced device.
func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       fmt.Sprintf("%s_%s", bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	}}
}

func SensorToGenericSensor(device Device, s *sensor.Sensor) GenericSensor {
	d := s.Description()
	return GenericSensor{
		Device:            device,
		Id:                s.UniqueID(),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              d.Name,
		UniqueId:          s.UniqueID(),
		UnitOfMeasurement: d.Unit,
		StateClass:        d.StateClass,
		DeviceClass:       d.DeviceClass,
		EnabledByDefault:  d.EnabledByDefault,
		Icon:              d.Icon,
	}
}

// InverterSensors announces the full device on the first sensor only.
func InverterSensors(device Device, sensors []*sensor.Sensor) []GenericSensor {
	generic := make([]GenericSensor, 0, len(sensors))
	for i, s := range sensors {
		dev := device
		if i > 0 {
			dev = IdDevice(device)
		}
		generic = append(generic, SensorToGenericSensor(dev, s))
	}
	return generic
}

func md5HashShort(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])[0:8]
}
