package actor

import (
	"fmt"
	"time"

	"github.com/berfenger/ingeteam2mqtt/internal/config"
	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/hub"
	. "github.com/berfenger/ingeteam2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

const (
	POLLER_REQUEST_TIMEOUT = 6 * time.Second
	// consecutive failed reads before reporting unhealthy
	POLLER_MAX_FAILURES = 3
)

// PollerActor reads the inverter every scan interval and stores the result in the hub.
type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	modbusActor *actor.PID
	config      *config.Config
	hub         *hub.Hub
	failures    uint

	logger *zap.Logger
}

type pollTick struct {
}

func NewPollerActor(config *config.Config, modbusActor *actor.PID, hub *hub.Hub, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:      config,
		modbusActor: modbusActor,
		hub:         hub,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_POLLER, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) scanInterval() time.Duration {
	return time.Duration(state.config.Hub.ScanIntervalSeconds) * time.Second
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started", zap.Duration("interval", state.scanInterval()))
		state.scheduler = scheduler.NewTimerScheduler(ctx)
		state.failures = 0
		// first read right away
		ctx.Send(ctx.Self(), pollTick{})
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(state.health())
	case pollTick:
		state.logger.Debug("poller@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.modbusActor, domain.GetDataRequest{
			ReadBattery: state.hub.ReadBattery(),
			ReadMeter:   state.hub.ReadMeter(),
		}, POLLER_REQUEST_TIMEOUT), func(err error) any {
			return domain.GetDataResponse{
				ActorResponseMixIn: ErrorResponse(err),
			}
		})

		// schedule next tick
		state.scheduler.RequestOnce(state.scanInterval(), ctx.Self(), pollTick{})
		state.behavior.BecomeStacked(state.WaitingDataReceive)
	case *actor.Stopping:
		state.logger.Debug("poller@default stopping")
	default:
		state.logger.Debug("poller@default: unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *PollerActor) WaitingDataReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDataResponse:
		if msg.HasResponseError() {
			state.failures++
			state.logger.Error("poller@waiting GetDataResponse error", zap.Error(msg.GetResponseError()), zap.Uint("failures", state.failures))
		} else {
			state.failures = 0
			state.logger.Debug("poller@waiting GetDataResponse", zap.Int("values", len(msg.Data)))
			state.hub.Update(msg.Data)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthRequest:
		ctx.Respond(state.health())
	case pollTick:
		// a read is still running, skip this tick
		state.logger.Warn("poller@waiting tick skipped, previous read still running")
		state.scheduler.RequestOnce(state.scanInterval(), ctx.Self(), pollTick{})
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) health() domain.ActorHealthResponse {
	resp := domain.ActorHealthResponse{
		Id:      domain.ACTOR_ID_POLLER,
		Healthy: state.failures < POLLER_MAX_FAILURES,
		State:   "idle",
	}
	if !resp.Healthy {
		resp.State = fmt.Sprintf("%d consecutive read failures", state.failures)
	}
	return resp
}
