package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMQTTTopic(t *testing.T) {

	assert := assert.New(t)

	topic, err := CheckMQTTTopic("Ingeteam_Home")
	assert.Nil(err)
	assert.Equal("ingeteam_home", topic)

	_, err = CheckMQTTTopic("ingeteam/home")
	assert.NotNil(err)

	_, err = CheckMQTTTopic("")
	assert.NotNil(err)
}

func TestConfigValidate(t *testing.T) {

	assert := assert.New(t)

	valid := Config{
		InverterModbusTcp: InverterModbusTCPConfig{Host: "192.168.1.50", Port: 502, ModbusAddress: 1},
		Hub:               HubConfig{Name: "ingeteam", ScanIntervalSeconds: 10},
	}
	assert.NoError(valid.Validate())

	cfg := valid
	cfg.Hub.Name = "  "
	assert.ErrorContains(cfg.Validate(), "hub.name")

	cfg = valid
	cfg.Hub.ScanIntervalSeconds = 0
	assert.ErrorContains(cfg.Validate(), "scan_interval_seconds")

	cfg = valid
	cfg.InverterModbusTcp.Host = ""
	assert.ErrorContains(cfg.Validate(), "host")

	cfg = valid
	cfg.InverterModbusTcp.ModbusAddress = 248
	assert.ErrorContains(cfg.Validate(), "modbus_address")
}
