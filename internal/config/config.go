package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel          zapcore.Level
	InverterModbusTcp InverterModbusTCPConfig `mapstructure:"inverter_modbus_tcp"`
	Hub               HubConfig               `mapstructure:"hub"`
	MQTT              MQTTConfig              `mapstructure:"mqtt"`
	Port              uint                    `mapstructure:"port"`
	HttpLog           bool                    `mapstructure:"http_log"`
}

type InverterModbusTCPConfig struct {
	Host          string
	Port          uint
	ModbusAddress uint   `mapstructure:"modbus_address"`
	TimeoutMillis uint32 `mapstructure:"timeout_millis"`
}

type HubConfig struct {
	Name                string
	ReadBattery         bool   `mapstructure:"read_battery"`
	ReadMeter           bool   `mapstructure:"read_meter"`
	ScanIntervalSeconds uint32 `mapstructure:"scan_interval_seconds"`
}

type MQTTConfig struct {
	Host                 string
	Port                 int
	Username             string
	Password             string
	BaseTopic            string `mapstructure:"base_topic"`
	HADiscoveryEnable    bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic     string `mapstructure:"ha_discovery_topic"`
	DiscoveryRefreshCron string `mapstructure:"discovery_refresh_cron"`
}

var topicRegexp = regexp.MustCompile("^[a-z0-9_]+$")

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	if !topicRegexp.MatchString(lowerBaseTopic) {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

// Validate checks the bounds of the values that have no safe fallback.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Hub.Name) == "" {
		return errors.New("config param hub.name must not be empty")
	}
	if c.Hub.ScanIntervalSeconds < 1 {
		return errors.New("config param hub.scan_interval_seconds should be >= 1")
	}
	if c.InverterModbusTcp.Host == "" {
		return errors.New("config param inverter_modbus_tcp.host is required")
	}
	if c.InverterModbusTcp.ModbusAddress > 247 {
		return errors.New("config param inverter_modbus_tcp.modbus_address should be <= 247")
	}
	return nil
}
