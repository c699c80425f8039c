package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
)

// ConsoleMessage is one render log line
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and mirroring them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
		// Channel full, drop rather than stall the render
	}
}

// console keeps the most recent messages across renders
type console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

func newConsole(limit int) *console {
	return &console{limit: limit}
}

// drain moves everything currently buffered in ch into the console
func (c *console) drain(ch <-chan ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		select {
		case msg := <-ch:
			c.messages = append(c.messages, msg)
		default:
			if over := len(c.messages) - c.limit; over > 0 {
				c.messages = append([]ConsoleMessage(nil), c.messages[over:]...)
			}
			return
		}
	}
}

// snapshot returns a copy of the retained messages, oldest first
func (c *console) snapshot() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage{}, c.messages...)
}
