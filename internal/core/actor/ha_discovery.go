package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/berfenger/ingeteam2mqtt/internal/config"
	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/events"
	"github.com/berfenger/ingeteam2mqtt/internal/core/hub"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"
	"github.com/berfenger/ingeteam2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// HADiscoveryActor hosts the sensor entities. It announces them to Home
// Assistant and publishes their state every time the hub is refreshed.
type HADiscoveryActor struct {
	config             *config.Config
	behavior           actor.Behavior
	stash              *actorutil.Stash
	hub                *hub.Hub
	modbusActor        *actor.PID
	mqttActor          *actor.PID
	modbusActorHealthy bool
	mqttActorHealthy   bool
	healthyRecv        int

	platform *mqttPlatform
	sensors  []*sensor.Sensor

	logger *zap.Logger
}

// mqttPlatform renders sensor state as MQTT publish requests. WriteState runs on
// the goroutine that refreshed the hub, so it only sends messages.
type mqttPlatform struct {
	root      *actor.RootContext
	mqttActor *actor.PID
	added     []*sensor.Sensor
}

var _ sensor.Platform = (*mqttPlatform)(nil)

func (p *mqttPlatform) AddEntities(sensors []*sensor.Sensor) {
	p.added = append(p.added, sensors...)
}

func (p *mqttPlatform) WriteState(s *sensor.Sensor) {
	p.root.Send(p.mqttActor, domain.PublishSensorUpdateRequest{
		Event: events.SensorToUpdateEvent(s),
	})
}

func NewHADiscoveryActor(config *config.Config, hub *hub.Hub, modbusActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:      config,
		hub:         hub,
		modbusActor: modbusActor,
		mqttActor:   mqttActor,
		behavior:    actor.NewBehavior(),
		stash:       &actorutil.Stash{},
		logger:      actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check Modbus and MQTT actor healthy
		state.healthyRecv = 0
		state.modbusActorHealthy = false
		state.mqttActorHealthy = false
		// Modbus Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MODBUS,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
		state.detach()
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_MODBUS:
				state.modbusActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {
			if !state.modbusActorHealthy || !state.mqttActorHealthy {
				panic(errors.New("MQTT Actor or Modbus Actor are not healthy"))
			}
			// Ask Modbus GetDevicesInfoRequest
			actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetDevicesInfoRequest{}, 6*time.Second), func(err error) any {
				return domain.GetDevicesInfoResponse{
					ActorResponseMixIn: actorutil.ErrorResponse(err),
				}
			})
			state.behavior.Become(state.WaitingInfoReceive)
		}
	case *actor.Restarting:
		state.detach()
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesInfoResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Info("hadiscovery@info inverter found",
			zap.String("host", msg.Inverter.Host),
			zap.Uint8("unit", msg.Inverter.UnitId),
			zap.String("status", msg.Inverter.Status))

		state.platform = &mqttPlatform{
			root:      ctx.ActorSystem().Root,
			mqttActor: state.mqttActor,
		}
		state.sensors = sensor.Setup(state.hub, state.platform)
		state.logger.Info("hadiscovery@info sensors created", zap.Int("count", len(state.sensors)))

		state.publishDiscovery(ctx)
		for _, s := range state.sensors {
			s.AddedToHost(state.platform)
		}
		// values read before the entities were attached
		state.publishStates()

		state.behavior.Become(state.ReadyReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.detach()
	default:
		state.logger.Debug("hadiscovery@info: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) ReadyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HA_DISCOVERY,
			Healthy: true,
			State:   fmt.Sprintf("%d sensors", len(state.sensors)),
		})
	case domain.RefreshDiscoveryRequest:
		state.logger.Info("hadiscovery@ready refresh", zap.String("reason", msg.Reason))
		state.publishDiscovery(ctx)
		state.publishStates()
	case *actor.Stopping:
		state.detach()
	case *actor.Restarting:
		state.detach()
	default:
		state.logger.Debug("hadiscovery@ready: unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HADiscoveryActor) publishDiscovery(ctx actor.Context) {
	ctx.Send(state.mqttActor, domain.PublishSensorUpdateRequest{
		Event:  events.BridgeStateEvent(true),
		Retain: true,
	})
	if !state.config.MQTT.HADiscoveryEnable {
		return
	}
	bridgeDevice := events.BridgeDevice(state.config.MQTT.BaseTopic)
	sensors := events.BridgeSensors(bridgeDevice)
	if len(state.sensors) > 0 {
		inverterDevice := events.InverterDevice(state.sensors[0].Device(), bridgeDevice.Id)
		sensors = append(sensors, events.InverterSensors(inverterDevice, state.sensors)...)
	}
	ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
		Sensors: sensors,
	})
}

func (state *HADiscoveryActor) publishStates() {
	if state.platform == nil {
		return
	}
	for _, s := range state.sensors {
		state.platform.WriteState(s)
	}
}

func (state *HADiscoveryActor) detach() {
	for _, s := range state.sensors {
		s.WillRemoveFromHost()
	}
	state.sensors = nil
	state.platform = nil
}
