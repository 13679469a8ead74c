package events

import (
	"fmt"

	. "github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"
)

const (
	DEFAULT_DECIMALS      = 2
	POWER_FACTOR_DECIMALS = 3
)

func SensorValueToUpdateEvent(id string, value any, ok bool, decimals uint) SensorUpdateEvent {
	mixIn := SensorUpdateEventMixIn{Id: id}
	if !ok || value == nil {
		return UnknownSensorUpdateEvent{SensorUpdateEventMixIn: mixIn}
	}
	switch v := value.(type) {
	case float64:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: v, Decimals: decimals}
	case float32:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: float64(v), Decimals: decimals}
	case int:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: float64(v)}
	case int64:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: float64(v)}
	case uint16:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: float64(v)}
	case uint32:
		return FloatSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: float64(v)}
	case string:
		return TextSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: v}
	case bool:
		text := "Off"
		if v {
			text = "On"
		}
		return TextSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: text}
	default:
		return TextSensorUpdateEvent{SensorUpdateEventMixIn: mixIn, Value: fmt.Sprint(v)}
	}
}

func SensorToUpdateEvent(s *sensor.Sensor) SensorUpdateEvent {
	var decimals uint = DEFAULT_DECIMALS
	if s.Description().DeviceClass == DEVICE_CLASS_POWER_FACTOR {
		decimals = POWER_FACTOR_DECIMALS
	}
	value, ok := s.NativeValue()
	return SensorValueToUpdateEvent(s.UniqueID(), value, ok, decimals)
}

func BridgeStateEvent(online bool) SensorUpdateEvent {
	return BridgeStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BRIDGE_STATE,
		},
		Value: online,
	}
}
