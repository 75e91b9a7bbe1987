package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/strefethen/spotify-remote-go/internal/api"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local display clients only; no cross-origin policy
	},
}

// RegisterRoutes wires status routes to the router.
func RegisterRoutes(router chi.Router, broadcaster *Broadcaster) {
	// WebSocket feed for the display client
	router.HandleFunc("/ws/status", websocketHandler(broadcaster))

	router.Method(http.MethodGet, "/v1/status", api.Handler(statusHandler(broadcaster)))
}

func websocketHandler(broadcaster *Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade failed - error already written to response
			return
		}

		broadcaster.SetConnection(conn)
	}
}

func statusHandler(broadcaster *Broadcaster) api.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		current := broadcaster.Current()
		return api.WriteResource(w, http.StatusOK, map[string]any{
			"object":            current.Object,
			"status":            current.Status,
			"updated_at":        current.UpdatedAt,
			"display_connected": broadcaster.Connected(),
		})
	}
}
