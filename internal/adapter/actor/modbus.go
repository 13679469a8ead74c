package actor

import (
	"fmt"
	"time"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/util/actorutil"
	"github.com/berfenger/ingeteam2mqtt/pkg/ingeteam_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	MODBUS_READ_TIMEOUT = 5 * time.Second
)

type ModbusActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	inverter ingeteam_modbus.InverterModbusReader
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewModbusActor(inverter ingeteam_modbus.InverterModbusReader, logger *zap.Logger) *ModbusActor {
	act := &ModbusActor{
		inverter: inverter,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_MODBUS, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *ModbusActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *ModbusActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("modbus@starting started")
		if err := state.inverter.Open(); err != nil {
			state.logger.Error("modbus@starting could not open inverter connection", zap.Error(err))
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.inverter.Close()
	default:
		state.logger.Debug("modbus@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ModbusActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("modbus@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MODBUS,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDevicesInfoRequest:
		state.logger.Debug("modbus@default: GetDevicesInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDevicesInfo),
			mapTaskResult[domain.GetDevicesInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDevicesInfoResponse{
					ActorResponseMixIn: actorutil.ErrorResponse(err),
				},
				replyTo: sender,
			}
		}).WithTimeout(MODBUS_READ_TIMEOUT).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case domain.GetDataRequest:
		state.logger.Debug("modbus@default: GetDataRequest", zap.Bool("battery", msg.ReadBattery), zap.Bool("meter", msg.ReadMeter))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.GetDataResponse, error) {
			return state.getData(msg.ReadBattery, msg.ReadMeter)
		}), mapTaskResult[domain.GetDataResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDataResponse{
					ActorResponseMixIn: actorutil.ErrorResponse(err),
				},
				replyTo: sender,
			}
		}).WithTimeout(MODBUS_READ_TIMEOUT).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingModbus)
	case *actor.Stopping:
		state.inverter.Close()
	default:
		state.logger.Debug("modbus@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *ModbusActor) WaitingModbus(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("modbus@WaitingModbus backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		if msg.replyTo != nil {
			ctx.Send(msg.replyTo, msg.message)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.inverter.Close()
	default:
		state.logger.Debug("modbus@WaitingModbus stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *ModbusActor) getDevicesInfo() (*domain.GetDevicesInfoResponse, error) {
	info, err := a.inverter.GetInfo()
	if err != nil {
		a.logger.Error("modbus: could not read inverter info", zap.Error(err))
		return nil, err
	}
	return &domain.GetDevicesInfoResponse{
		Inverter: info,
	}, nil
}

func (a *ModbusActor) getData(readBattery, readMeter bool) (*domain.GetDataResponse, error) {
	data, err := a.inverter.ReadData(readBattery, readMeter)
	if err != nil {
		a.logger.Error("modbus: could not read inverter data", zap.Error(err))
		return nil, err
	}
	return &domain.GetDataResponse{
		Data: data,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
