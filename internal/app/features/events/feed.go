// internal/app/features/events/feed.go
package events

import (
	"net/http"

	"github.com/auraclub/aurahub/internal/app/system/changefeed"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/sse"
	"go.uber.org/zap"
)

// FeedHandler streams the live event list over Server-Sent Events.
// Each message carries the complete current list, so a client can always
// replace its view wholesale instead of patching deltas.
type FeedHandler struct {
	Projector *changefeed.Projector
	Log       *zap.Logger
	broker    *sse.Broker
}

func NewFeedHandler(p *changefeed.Projector, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{Projector: p, Log: logger, broker: sse.NewBroker()}
}

// Serve handles GET /events/feed. The broker owns the stream: headers,
// keep-alive comments, and the retry hint. Each connection gets its own
// projector subscription, cancelled when the client goes away. On a
// source error we send one error event; the projector stops delivering
// after that, and a reconnecting client gets a fresh snapshot.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.broker.HandleRequest(w, r, func(client *sse.Client) {
		cancel := h.Projector.Subscribe(
			func(events []models.Event) {
				// A dropped snapshot is superseded by the next one, so a
				// full client buffer is not an error.
				if err := client.SendJSON("snapshot", events); err != nil {
					h.Log.Error("event feed: marshal snapshot failed", zap.Error(err))
				}
			},
			func(err error) {
				h.Log.Warn("event feed: source error", zap.Error(err))
				client.SendEvent("error", `{"error":"event feed interrupted"}`)
			},
		)
		go func() {
			<-client.Done()
			cancel()
		}()
	})
}
