package actor

import (
	"errors"
	"testing"
	"time"

	adactor "github.com/berfenger/ingeteam2mqtt/internal/adapter/actor"
	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/hub"
	"github.com/berfenger/ingeteam2mqtt/internal/util"
	"github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPollerActorUpdatesHub(t *testing.T) {

	assert := assert.New(t)

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.Hub.ReadMeter = false
	logger := zap.Must(zap.NewDevelopment())

	h := hub.NewHub(cfg.Hub)

	modbusPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewModbusActor(&ingeteam_modbus.TestInverterModbusReader{}, logger)
	}))
	pollerPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, modbusPID, h, logger)
	}))

	assert.Eventually(func() bool {
		return !h.LastUpdate().IsZero()
	}, 3*time.Second, 20*time.Millisecond)

	v, ok := h.Get("status")
	assert.True(ok)
	assert.Equal("On-grid", v)
	_, ok = h.Get("battery_state_of_charge")
	assert.True(ok)
	_, ok = h.Get("em_active_power")
	assert.False(ok)

	// scan interval is one second in the test config
	first := h.LastUpdate()
	assert.Eventually(func() bool {
		return h.LastUpdate().After(first)
	}, 3*time.Second, 50*time.Millisecond)

	res, err := context.RequestFuture(pollerPID, domain.ActorHealthRequest{}, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	assert.True(res.(domain.ActorHealthResponse).Healthy)

	context.Stop(pollerPID)
	context.Stop(modbusPID)

	as.Shutdown()
}

func TestPollerActorKeepsDataOnError(t *testing.T) {

	assert := assert.New(t)

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	h := hub.NewHub(cfg.Hub)
	h.Update(map[string]any{"status": "On-grid"})
	updated := h.LastUpdate()

	reader := &ingeteam_modbus.TestInverterModbusReader{Fail: errors.New("timeout")}
	modbusPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewModbusActor(reader, logger)
	}))
	pollerPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, modbusPID, h, logger)
	}))

	// three failed reads at one second interval
	assert.Eventually(func() bool {
		res, err := context.RequestFuture(pollerPID, domain.ActorHealthRequest{}, 1*time.Second).Result()
		return err == nil && !res.(domain.ActorHealthResponse).Healthy
	}, 6*time.Second, 200*time.Millisecond)

	v, _ := h.Get("status")
	assert.Equal("On-grid", v)
	assert.Equal(updated, h.LastUpdate())

	context.Stop(pollerPID)
	context.Stop(modbusPID)

	as.Shutdown()
}

func TestPollerActorHealthDuringSlowRead(t *testing.T) {

	assert := assert.New(t)

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	h := hub.NewHub(cfg.Hub)

	reader := &ingeteam_modbus.TestInverterModbusReader{Delay: 3 * time.Second}
	modbusPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewModbusActor(reader, logger)
	}))
	pollerPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, modbusPID, h, logger)
	}))

	// first read is in flight
	time.Sleep(300 * time.Millisecond)
	assert.True(h.LastUpdate().IsZero())

	res, err := context.RequestFuture(pollerPID, domain.ActorHealthRequest{}, 500*time.Millisecond).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := res.(domain.ActorHealthResponse)
	assert.True(resp.Healthy)
	assert.Equal(domain.ACTOR_ID_POLLER, resp.Id)

	context.Stop(pollerPID)
	context.Stop(modbusPID)

	as.Shutdown()
}
