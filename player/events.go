package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/bedtime-cli/bedtime/log"
)

// Event is a notification pushed by mpv: a change of an observed property or
// a bare event such as end-file.
type Event struct {
	Name     string `json:"event"`
	Property string `json:"name"`
	Data     any    `json:"data"`
	Reason   string `json:"reason"`
}

// EventListener keeps a connection to mpv open and forwards its events.
type EventListener struct {
	socket     string
	properties []string
	handle     func(Event)

	mu   sync.Mutex
	conn net.Conn
	done chan struct{}
}

// NewEventListener observes properties on the mpv instance behind socket.
func NewEventListener(socket string, handle func(Event), properties ...string) *EventListener {
	return &EventListener{
		socket:     socket,
		properties: properties,
		handle:     handle,
	}
}

// Start subscribes to the properties and begins forwarding events.
func (l *EventListener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", l.socket)
	if err != nil {
		return fmt.Errorf("event listener: %w", err)
	}

	// Observers are bound to the connection that registered them.
	encoder := json.NewEncoder(conn)
	for i, property := range l.properties {
		if err := encoder.Encode(ipcRequest{Command: []any{"observe_property", i + 1, property}}); err != nil {
			_ = conn.Close()
			return fmt.Errorf("observe %s: %w", property, err)
		}
	}

	l.conn = conn
	l.done = make(chan struct{})
	go l.read(conn, l.done)
	return nil
}

// Stop closes the connection and waits for the reader to exit.
func (l *EventListener) Stop() {
	l.mu.Lock()
	conn, done := l.conn, l.done
	l.conn = nil
	l.mu.Unlock()

	if conn == nil {
		return
	}

	_ = conn.Close()
	<-done
}

func (l *EventListener) read(conn net.Conn, done chan<- struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil || event.Name == "" {
			continue
		}
		l.handle(event)
	}

	if err := scanner.Err(); err != nil {
		log.Debugf("mpv events: %v", err)
	}
}
