package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
)

// SSEHandler handles Server-Sent Events for the live lookup stream
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.LookupEvent]bool // channel -> clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.LookupEvent]bool),
	}
}

// StreamLookups handles SSE connections for completed lookups.
// GET /api/stream/lookups?risk=high narrows the stream to one risk grade.
func (h *SSEHandler) StreamLookups(w http.ResponseWriter, r *http.Request) {
	channel := providers.EventChannelLookups
	if riskParam := r.URL.Query().Get("risk"); riskParam != "" {
		risk := entities.Risk(strings.ToLower(riskParam))
		switch risk {
		case entities.RiskHigh, entities.RiskModerate, entities.RiskLow, entities.RiskUnknown:
			channel = providers.GetRiskChannel(risk)
		default:
			respondWithError(w, http.StatusBadRequest, "invalid risk filter")
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create client channel
	clientChan := make(chan *entities.LookupEvent, 50)

	// Register client
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	// Subscribe to events
	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("channel", channel).
			Msg("failed to subscribe to lookup stream")
		respondWithError(w, http.StatusInternalServerError, "stream unavailable")
		return
	}

	// Send initial connection event
	h.sendEvent(w, "connected", map[string]interface{}{
		"channel":   channel,
		"timestamp": time.Now(),
	})

	// Flush to send the initial event
	flusher.Flush()

	// Start forwarding events
	go h.forwardEvents(r.Context(), eventChan, clientChan)

	// Keep connection alive and send events
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			observability.LoggerFromContext(r.Context()).Debug().
				Str("channel", channel).
				Msg("client disconnected from lookup stream")
			return
		case <-ticker.C:
			// Send heartbeat
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.LookupEvent, clientChan chan<- *entities.LookupEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

// registerClient registers a client for a channel
func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.LookupEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.LookupEvent]bool)
	}
	h.clients[channel][clientChan] = true
	observability.GetLogger().Debug().
		Str("channel", channel).
		Int("total", len(h.clients[channel])).
		Msg("stream client registered")
}

// unregisterClient unregisters a client from a channel
func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.LookupEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)

		// Clean up empty channel
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to marshal stream event")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
