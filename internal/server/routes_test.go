package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"
	"github.com/berfenger/ingeteam2mqtt/internal/core/hub"
	"github.com/berfenger/ingeteam2mqtt/internal/util"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func healthActor(healthy bool) actor.Producer {
	return func() actor.Actor {
		return actor.ReceiveFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(domain.ActorHealthRequest); ok {
				ctx.Respond(domain.ActorHealthResponse{Id: domain.ACTOR_ID_MASTER, Healthy: healthy})
			}
		})
	}
}

func TestHealthCheckHandler(t *testing.T) {

	assert := assert.New(t)

	as := actor.NewActorSystem()
	cfg := util.LoadTestConfig()
	h := hub.NewHub(cfg.Hub)

	for _, healthy := range []bool{true, false} {
		pid := as.Root.Spawn(actor.PropsFromProducer(healthActor(healthy)))
		handler := (&Server{rootContext: as.Root, masterActor: pid, hub: h}).RegisterRoutes()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		if healthy {
			assert.Equal(http.StatusOK, rec.Code)
			assert.Equal("health_check: OK", rec.Body.String())
		} else {
			assert.Equal(http.StatusServiceUnavailable, rec.Code)
			assert.Equal("health_check: FAIL", rec.Body.String())
		}
		as.Root.Stop(pid)
	}

	as.Shutdown()
}

func TestSensorsHandler(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	h := hub.NewHub(cfg.Hub)
	handler := (&Server{hub: h}).RegisterRoutes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sensors", nil))
	assert.Equal(http.StatusOK, rec.Code)

	var resp SensorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Error(err)
		return
	}
	assert.Equal("ingeteam", resp.Name)
	assert.Nil(resp.LastUpdate)
	assert.Empty(resp.Keys)

	h.Update(map[string]any{"status": "On-grid", "active_power": 2350})

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sensors", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Error(err)
		return
	}
	assert.NotNil(resp.LastUpdate)
	assert.Equal([]string{"active_power", "status"}, resp.Keys)
	assert.Equal("On-grid", resp.Data["status"])
	assert.Equal(float64(2350), resp.Data["active_power"])
}
