package hub

import (
	"maps"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/berfenger/ingeteam2mqtt/internal/config"
	"github.com/berfenger/ingeteam2mqtt/internal/core/sensor"
)

type dataUpdated struct{}

// Hub caches the last values read from the inverter and notifies the
// registered sensors after every refresh.
type Hub struct {
	name        string
	readBattery bool
	readMeter   bool

	mu         sync.RWMutex
	data       map[string]any
	lastUpdate time.Time

	stream    *eventstream.EventStream
	listeners map[sensor.UpdateListener]*eventstream.Subscription
}

var _ sensor.Hub = (*Hub)(nil)

func NewHub(conf config.HubConfig) *Hub {
	return &Hub{
		name:        conf.Name,
		readBattery: conf.ReadBattery,
		readMeter:   conf.ReadMeter,
		data:        map[string]any{},
		stream:      eventstream.NewEventStream(),
		listeners:   map[sensor.UpdateListener]*eventstream.Subscription{},
	}
}

func (h *Hub) Name() string {
	return h.name
}

func (h *Hub) ReadBattery() bool {
	return h.readBattery
}

func (h *Hub) ReadMeter() bool {
	return h.readMeter
}

func (h *Hub) Get(key string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.data[key]
	return v, ok
}

// Data returns a copy of the current snapshot.
func (h *Hub) Data() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.data)
}

func (h *Hub) LastUpdate() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastUpdate
}

// Update replaces the snapshot and notifies every listener.
func (h *Hub) Update(data map[string]any) {
	h.mu.Lock()
	h.data = maps.Clone(data)
	if h.data == nil {
		h.data = map[string]any{}
	}
	h.lastUpdate = time.Now()
	h.mu.Unlock()
	h.stream.Publish(dataUpdated{})
}

func (h *Hub) AddSensorListener(listener sensor.UpdateListener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.listeners[listener]; ok {
		return
	}
	h.listeners[listener] = h.stream.SubscribeWithPredicate(func(evt interface{}) {
		listener.OnDataUpdated()
	}, func(evt interface{}) bool {
		_, ok := evt.(dataUpdated)
		return ok
	})
}

func (h *Hub) RemoveSensorListener(listener sensor.UpdateListener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub, ok := h.listeners[listener]
	if !ok {
		return
	}
	h.stream.Unsubscribe(sub)
	delete(h.listeners, listener)
}

func (h *Hub) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
