package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/util"
)

const (
	socketPollInterval = 100 * time.Millisecond
	socketTimeout      = 5 * time.Second
	quitTimeout        = 3 * time.Second
)

// MPV plays audio through an external mpv process controlled over JSON-IPC.
type MPV struct {
	// Binary is the mpv executable, "mpv" when empty.
	Binary string

	// Headers are sent with every HTTP request mpv makes.
	Headers map[string]string
}

// NewMPV returns an mpv backend using the executable found in PATH.
func NewMPV() *MPV {
	return &MPV{Binary: "mpv"}
}

// Available reports whether the mpv executable can be found.
func (m *MPV) Available() bool {
	_, err := exec.LookPath(m.binary())
	return err == nil
}

func (m *MPV) binary() string {
	if m.Binary == "" {
		return "mpv"
	}
	return m.Binary
}

func (m *MPV) Open(ctx context.Context, locator string) (Resource, error) {
	target, err := sanitizeMediaTarget(locator)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	socket, err := socketPath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(m.binary(), m.args(socket, target)...)
	isolate(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	r := &mpvResource{
		socket: socket,
		cmd:    cmd,
		exited: make(chan struct{}),
	}

	go func() {
		_ = cmd.Wait()
		close(r.exited)
	}()

	if err := r.await(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}

	r.events = NewEventListener(socket, r.handle, "eof-reached", "duration")
	if err := r.events.Start(); err != nil {
		log.Warnf("mpv: %v", err)
	}

	return r, nil
}

func (m *MPV) args(socket, target string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--no-video",
		"--idle=no",
		"--keep-open=yes",
		"--pause",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + constant.Bedtime,
		"--volume=100",
	}

	if len(m.Headers) > 0 {
		var fields []string
		for k, v := range m.Headers {
			fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
		}
		args = append(args, "--http-header-fields="+strings.Join(fields, ","))
	}

	return append(args, "--", target)
}

func socketPath() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("socket name: %w", err)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Bedtime, suffix)), nil
}

type mpvResource struct {
	socket string
	cmd    *exec.Cmd
	exited chan struct{}
	events *EventListener

	eof      atomic.Bool
	duration atomic.Int64
}

// await waits for the IPC socket and for mpv to finish opening the file.
func (r *mpvResource) await(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, socketTimeout)
	defer cancel()

	ticker := time.NewTicker(socketPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("mpv did not open the source: %w", ctx.Err())
		case <-r.exited:
			return errors.New("mpv exited before the source was opened")
		case <-ticker.C:
		}

		conn, err := net.Dial("unix", r.socket)
		if err != nil {
			continue
		}
		_ = conn.Close()

		seconds, err := floatProperty(r.socket, "duration")
		if errors.Is(err, errPropertyUnavailable) {
			continue
		}
		if err != nil {
			return err
		}

		r.duration.Store(int64(util.Seconds(seconds)))
		return nil
	}
}

func (r *mpvResource) handle(event Event) {
	switch event.Name {
	case "property-change":
		switch event.Property {
		case "eof-reached":
			reached, _ := event.Data.(bool)
			r.eof.Store(reached)
		case "duration":
			if seconds, ok := event.Data.(float64); ok {
				r.duration.Store(int64(util.Seconds(seconds)))
			}
		}
	case "end-file":
		if event.Reason == "eof" {
			r.eof.Store(true)
		}
	}
}

func (r *mpvResource) running() bool {
	select {
	case <-r.exited:
		return false
	default:
		return true
	}
}

func (r *mpvResource) Duration() time.Duration {
	return time.Duration(r.duration.Load())
}

func (r *mpvResource) Position() (time.Duration, error) {
	seconds, err := floatProperty(r.socket, "time-pos")
	if err != nil {
		return 0, err
	}
	return util.Seconds(seconds), nil
}

// Ended also covers the user quitting mpv on their own.
func (r *mpvResource) Ended() bool {
	return r.eof.Load() || !r.running()
}

func (r *mpvResource) Play() error {
	if r.eof.Load() {
		if err := r.Seek(0); err != nil {
			return err
		}
	}
	return setProperty(r.socket, "pause", false)
}

func (r *mpvResource) Pause() error {
	return setProperty(r.socket, "pause", true)
}

func (r *mpvResource) Seek(position time.Duration) error {
	if _, err := call(r.socket, "seek", position.Seconds(), "absolute+exact"); err != nil {
		return err
	}
	r.eof.Store(false)
	return nil
}

func (r *mpvResource) SetVolume(volume float64) error {
	return setProperty(r.socket, "volume", volume*100)
}

func (r *mpvResource) SetRate(rate float64) error {
	return setProperty(r.socket, "speed", rate)
}

func (r *mpvResource) Close() error {
	if r.events != nil {
		r.events.Stop()
	}

	if r.running() {
		_, _ = call(r.socket, "quit")

		select {
		case <-r.exited:
		case <-time.After(quitTimeout):
			log.Warn("mpv did not quit, killing it")
			_ = terminate(r.cmd.Process)
			<-r.exited
		}
	}

	if err := os.Remove(r.socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitizeMediaTarget rejects locators mpv would misread as options.
func sanitizeMediaTarget(locator string) (string, error) {
	l := strings.TrimSpace(locator)
	if l == "" {
		return "", errors.New("empty locator")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("control characters in locator")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("locator must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", err
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
