package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// ipcRequest is one JSON-IPC command sent to mpv.
type ipcRequest struct {
	Command []any `json:"command"`
}

// ipcReply is mpv's answer to a command.
type ipcReply struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

const (
	ipcAttempts   = 3
	ipcRetryDelay = 100 * time.Millisecond
	ipcDeadline   = time.Second
)

// errPropertyUnavailable is mpv's answer for properties without a value yet,
// such as duration while a stream is still opening.
var errPropertyUnavailable = errors.New("property unavailable")

// call sends a command over a fresh connection and returns the reply data.
// Transient connection errors are retried.
func call(socket string, command ...any) (any, error) {
	var err error
	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		var data any
		data, err = callOnce(socket, command)
		if err == nil || errors.Is(err, errPropertyUnavailable) {
			return data, err
		}
	}

	return nil, fmt.Errorf("mpv %v: %w", command[0], err)
}

func callOnce(socket string, command []any) (any, error) {
	conn, err := net.DialTimeout("unix", socket, ipcDeadline)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ipcDeadline)); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(ipcRequest{Command: command})
	if err != nil {
		return nil, err
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, err
	}

	// Events may arrive on the same connection before the reply.
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply struct {
			ipcReply
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			return nil, err
		}
		if reply.Event != "" {
			continue
		}

		switch reply.Error {
		case "", "success":
			return reply.Data, nil
		case errPropertyUnavailable.Error():
			return nil, errPropertyUnavailable
		default:
			return nil, errors.New(reply.Error)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("connection closed without reply")
}

func floatProperty(socket, name string) (float64, error) {
	data, err := call(socket, "get_property", name)
	if err != nil {
		return 0, err
	}

	value, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("mpv %s: expected a number, got %T", name, data)
	}
	return value, nil
}

func setProperty(socket, name string, value any) error {
	_, err := call(socket, "set_property", name, value)
	return err
}
