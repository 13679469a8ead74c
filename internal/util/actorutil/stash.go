package actorutil

import (
	"github.com/asynkron/protoactor-go/actor"
)

// Stash buffers messages received in a state that cannot handle them yet.
// Stashed messages keep their original sender when replayed.
type Stash struct {
	elems []stashElem
}

type stashElem struct {
	msg    any
	sender *actor.PID
}

func (stash *Stash) Stash(ctx actor.Context, msg any) {
	stash.elems = append(stash.elems, stashElem{
		msg:    msg,
		sender: ctx.Sender(),
	})
}

func (stash *Stash) Len() int {
	return len(stash.elems)
}

func (stash *Stash) UnstashAll(ctx actor.Context) {
	elems := stash.elems
	stash.elems = nil
	for _, elem := range elems {
		ctx.RequestWithCustomSender(ctx.Self(), elem.msg, elem.sender)
	}
}

func (stash *Stash) UnstashOldest(ctx actor.Context) {
	if len(stash.elems) > 0 {
		first := stash.elems[0]
		stash.elems = stash.elems[1:]
		ctx.RequestWithCustomSender(ctx.Self(), first.msg, first.sender)
	}
}
