package actorutil

import (
	"errors"
	"testing"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func TestForRequestReplyTo(t *testing.T) {

	assert := assert.New(t)

	pid := actor.NewPID("local", "probe")
	req := domain.GetDataRequest{
		ActorRequestMixIn: domain.ActorRequestMixIn{ReplyToRef: domain.RefOf(pid)},
	}
	assert.Equal(pid, ForRequest(req).ReplyTo(nil))

	var ref *domain.ActorRef
	assert.Nil(ref.PID())
}

func TestErrorResponse(t *testing.T) {

	assert := assert.New(t)

	resp := domain.GetDataResponse{ActorResponseMixIn: ErrorResponse(errors.New("timeout"))}
	assert.True(resp.HasResponseError())
	assert.EqualError(resp.GetResponseError(), "timeout")

	assert.False(domain.GetDataResponse{}.HasResponseError())
}
