package util

import (
	"github.com/berfenger/ingeteam2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		InverterModbusTcp: config.InverterModbusTCPConfig{
			Host:          "-.-.-.-",
			Port:          502,
			ModbusAddress: 1,
			TimeoutMillis: 1000,
		},
		Hub: config.HubConfig{
			Name:                "ingeteam",
			ReadBattery:         true,
			ReadMeter:           true,
			ScanIntervalSeconds: 1,
		},
		MQTT: config.MQTTConfig{
			Host:              "localhost",
			Port:              1883,
			BaseTopic:         "ingeteam",
			HADiscoveryEnable: true,
			HADiscoveryTopic:  "homeassistant",
		},
		Port: 8080,
	}
}
