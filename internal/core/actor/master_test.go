package actor

import (
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

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	h := hub.NewHub(cfg.Hub)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, h, func() *adactor.ModbusActor {
			return adactor.NewModbusActor(&ingeteam_modbus.TestInverterModbusReader{}, logger)
		}, func() *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, logger, nil)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	if err != nil {
		t.Error(err)
		return
	}

	// the poller fills the hub and the platform attaches every sensor
	assert.Eventually(t, func() bool {
		return !h.LastUpdate().IsZero() && h.ListenerCount() == 69
	}, 5*time.Second, 50*time.Millisecond)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.True(t, healthResp.Healthy, "healthy is true")
	assert.Equal(t, domain.ACTOR_ID_MASTER, healthResp.Id)

	context.StopFuture(pid).Wait()

	// stopping the platform detaches the sensors from the hub
	assert.Eventually(t, func() bool {
		return h.ListenerCount() == 0
	}, 2*time.Second, 50*time.Millisecond)

	as.Shutdown()
}
