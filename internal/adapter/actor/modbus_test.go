package actor

import (
	"errors"
	"testing"
	"time"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/util/actorutil"
	"github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDevicesInfoModbusActor(t *testing.T) {

	assert := assert.New(t)

	inv, err := ingeteam_modbus.CreateTestInverterModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(inv, logger) })
	pid := context.Spawn(props)

	msg := domain.GetDevicesInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDevicesInfoResponse)

	assert.False(resp.HasResponseError())
	assert.Equal("Ingeteam", resp.Inverter.Manufacturer, "Inverter manufacturer")
	assert.Equal("On-grid", resp.Inverter.Status, "Inverter status")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetDataModbusActor(t *testing.T) {

	assert := assert.New(t)

	inv, err := ingeteam_modbus.CreateTestInverterModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(inv, logger) })
	pid := context.Spawn(props)

	result, err := context.RequestFuture(pid, domain.GetDataRequest{ReadBattery: true}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDataResponse)

	assert.False(resp.HasResponseError())
	assert.Equal("On-grid", resp.Data["status"])
	assert.Equal(2350, resp.Data["active_power"])
	assert.Equal("Constant Current Charging", resp.Data["battery_status"])
	assert.NotContains(resp.Data, "em_active_power")

	// requests queued while a read is running are served afterwards
	f1 := context.RequestFuture(pid, domain.GetDataRequest{ReadMeter: true}, 15*time.Second)
	f2 := context.RequestFuture(pid, domain.ActorHealthRequest{}, 15*time.Second)
	r1, err := f1.Result()
	if err != nil {
		t.Error(err)
		return
	}
	assert.Contains(r1.(domain.GetDataResponse).Data, "em_active_power")
	r2, err := f2.Result()
	if err != nil {
		t.Error(err)
		return
	}
	assert.True(r2.(domain.ActorHealthResponse).Healthy)

	context.Stop(pid)

	as.Shutdown()
}

func TestGetDataErrorModbusActor(t *testing.T) {

	assert := assert.New(t)

	inv := &ingeteam_modbus.TestInverterModbusReader{Fail: errors.New("connection reset")}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(inv, logger) })
	pid := context.Spawn(props)

	result, err := context.RequestFuture(pid, domain.GetDataRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDataResponse)

	assert.True(resp.HasResponseError())
	assert.ErrorContains(resp.GetResponseError(), "connection reset")
	assert.Nil(resp.Data)

	context.Stop(pid)

	as.Shutdown()
}
