package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/berfenger/ingeteam2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/lo"
)

type SensorsResponse struct {
	Name       string         `json:"name"`
	LastUpdate *time.Time     `json:"last_update"`
	Keys       []string       `json:"keys"`
	Data       map[string]any `json:"data"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/sensors", s.SensorsHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

// SensorsHandler returns the latest values read from the inverter.
func (s *Server) SensorsHandler(c echo.Context) error {
	data := s.hub.Data()
	keys := lo.Keys(data)
	slices.Sort(keys)
	resp := SensorsResponse{
		Name: s.hub.Name(),
		Keys: keys,
		Data: data,
	}
	if updated := s.hub.LastUpdate(); !updated.IsZero() {
		resp.LastUpdate = &updated
	}
	return c.JSON(http.StatusOK, resp)
}
