package actor

import (
	"context"
	"fmt"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/quartz"
)

// RefreshDiscoveryJob is a quartz job that asks the master actor to publish
// discovery configs and sensor states again.
type RefreshDiscoveryJob struct {
	root   *actor.RootContext
	target *actor.PID
}

var _ quartz.Job = (*RefreshDiscoveryJob)(nil)

func NewRefreshDiscoveryJob(root *actor.RootContext, target *actor.PID) *RefreshDiscoveryJob {
	return &RefreshDiscoveryJob{
		root:   root,
		target: target,
	}
}

func (job *RefreshDiscoveryJob) Execute(_ context.Context) error {
	job.root.Send(job.target, domain.RefreshDiscoveryRequest{Reason: "scheduled"})
	return nil
}

func (job *RefreshDiscoveryJob) Description() string {
	return fmt.Sprintf("RefreshDiscoveryJob::%s", job.target.Id)
}

// ScheduleDiscoveryRefresh registers a RefreshDiscoveryJob with the given cron
// expression.
func ScheduleDiscoveryRefresh(sched quartz.Scheduler, cronExpression string, root *actor.RootContext, target *actor.PID) error {
	trigger, err := quartz.NewCronTrigger(cronExpression)
	if err != nil {
		return err
	}
	detail := quartz.NewJobDetail(NewRefreshDiscoveryJob(root, target), quartz.NewJobKey("refresh_discovery"))
	return sched.ScheduleJob(detail, trigger)
}
