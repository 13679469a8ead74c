package domain

import "github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_MODBUS       = "modbus"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetDevicesInfoRequest struct {
	ActorRequestMixIn
}

type GetDevicesInfoResponse struct {
	ActorResponseMixIn
	Inverter *ingeteam_modbus.InverterInfo
}

type GetDataRequest struct {
	ActorRequestMixIn
	ReadBattery bool
	ReadMeter   bool
}

type GetDataResponse struct {
	ActorResponseMixIn
	Data map[string]any
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

// RefreshDiscoveryRequest asks the platform to publish discovery configs and
// current states again.
type RefreshDiscoveryRequest struct {
	ActorRequestMixIn
	Reason string
}

// HAStatusMessage is the payload received on the Home Assistant status topic.
type HAStatusMessage struct {
	Online bool
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
