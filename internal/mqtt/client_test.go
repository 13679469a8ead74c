package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/util"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := util.LoadTestConfig()
	return CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
}

func TestTopics(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	assert.Equal("ingeteam/bridge/state", client.BridgeStateTopic())
	assert.Equal("ingeteam/sensor/ingeteam_active_power/state", client.SensorStateTopic("ingeteam_active_power"))
	assert.Equal("ingeteam/sensor/casa-solar_status/state", client.SensorStateTopic("Casa Solar_status"))
	assert.Equal("homeassistant/status", client.HAStatusTopic())
}

func TestParseHAStatus(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	online, err := client.ParseHAStatus("homeassistant/status", []byte("online"))
	assert.Nil(err)
	assert.True(online)

	online, err = client.ParseHAStatus("homeassistant/status", []byte("offline"))
	assert.Nil(err)
	assert.False(online)

	_, err = client.ParseHAStatus("homeassistant/status", []byte("restarting"))
	assert.NotNil(err)

	_, err = client.ParseHAStatus("ingeteam/bridge/state", []byte("online"))
	assert.NotNil(err)
}

func TestSensorDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	sensor := domain.GenericSensor{
		Device: domain.Device{
			Id:           "ingeteam_ingeteam",
			Name:         "ingeteam",
			Manufacturer: "Ingeteam",
		},
		Id:          "ingeteam_power_factor",
		SensorType:  domain.SENSOR_TYPE_SENSOR,
		Name:        "Power Factor Cosφ",
		UniqueId:    "ingeteam_power_factor",
		StateClass:  domain.STATE_CLASS_MEASUREMENT,
		DeviceClass: domain.DEVICE_CLASS_POWER_FACTOR,
	}

	assert.Equal("homeassistant/sensor/ingeteam_ingeteam/ingeteam_power_factor/config", client.HADiscoverySensorTopic(sensor))

	msg := GenericSensorToHADiscoveryMessage(client, sensor)
	assert.Equal("ingeteam/sensor/ingeteam_power_factor/state", msg.StateTopic)
	assert.Equal("ingeteam/bridge/state", msg.AvTopic)
	assert.Equal("ingeteam_power_factor", msg.ObjectId)
	assert.Empty(msg.PayloadOn)

	payload, err := json.Marshal(msg)
	if err != nil {
		t.Error(err)
		return
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Error(err)
		return
	}
	assert.Equal("power_factor", decoded["device_class"])
	assert.Equal([]any{"ingeteam_ingeteam"}, decoded["device"].(map[string]any)["identifiers"])
	assert.NotContains(decoded, "unit_of_measurement")
	assert.NotContains(decoded, "enabled_by_default")
}

func TestBridgeDiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	msg := GenericSensorToHADiscoveryMessage(client, domain.GenericSensor{
		Device:     domain.Device{Id: "ingeteam_bridge_1234"},
		Id:         domain.SENSOR_ID_BRIDGE_STATE,
		SensorType: domain.SENSOR_TYPE_BINARY,
	})

	assert.Equal(client.BridgeStateTopic(), msg.StateTopic)
	assert.Equal(MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Equal(MQTT_PAYLOAD_OFFLINE, msg.PayloadOff)
	assert.Empty(msg.ObjectId)
}
