package handlers

import (
	"io"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// streamKeepAlive is how often an idle Server-Sent Events connection receives a ping.
var streamKeepAlive = 25 * time.Second

// streamEvents relays events of stream to the client as Server-Sent Events until it disconnects.
func streamEvents(c *gin.Context, subscriber portssvc.EventSubscriber, stream string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	events, cancel := subscriber.Subscribe(stream)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	logger.Info("Event stream opened", slog.String("stream", stream))
	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		// Pending events are flushed before a disconnect is noticed.
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		default:
		}

		select {
		case <-done:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	logger.Info("Event stream closed", slog.String("stream", stream))
}
