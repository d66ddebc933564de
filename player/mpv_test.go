package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http, https and file URLs", func() {
			for _, u := range []string{"https://cdn.example.com/a.mp3", "http://x/y.wav", "file:///tmp/a.mp3"} {
				got, err := sanitizeMediaTarget(u)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, u)
			}
		})

		Convey("Should clean local paths", func() {
			got, err := sanitizeMediaTarget(" /music/../stories/owl.mp3 ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, filepath.Clean("/stories/owl.mp3"))
		})

		Convey("Should reject option lookalikes, control characters and other schemes", func() {
			for _, u := range []string{"", "--script=evil.lua", "a.mp3\nb", "ftp://x/a.mp3"} {
				_, err := sanitizeMediaTarget(u)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestMPVArgs(t *testing.T) {
	Convey("Given an mpv backend with headers", t, func() {
		m := &MPV{Headers: map[string]string{"Authorization": "Bearer a,b"}}
		args := m.args("/tmp/x.sock", "https://cdn.example.com/a.mp3")

		Convey("It should start audio only, paused and kept open", func() {
			So(args, ShouldContain, "--no-video")
			So(args, ShouldContain, "--pause")
			So(args, ShouldContain, "--keep-open=yes")
			So(args, ShouldContain, "--input-ipc-server=/tmp/x.sock")
		})

		Convey("It should escape header commas and end with the target", func() {
			So(args, ShouldContain, "--http-header-fields=Authorization: Bearer a%2Cb")
			So(args[len(args)-2], ShouldEqual, "--")
			So(args[len(args)-1], ShouldEqual, "https://cdn.example.com/a.mp3")
		})

		Convey("The default binary should be mpv", func() {
			So(m.binary(), ShouldEqual, "mpv")
		})
	})
}

// fakeMPV answers JSON-IPC commands from a canned property table.
func fakeMPV(t *testing.T, properties map[string]any) (socket string, commands chan []any) {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	socket = filepath.Join(dir, "mpv.sock")

	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}

	commands = make(chan []any, 16)
	t.Cleanup(func() {
		_ = listener.Close()
		_ = os.RemoveAll(dir)
	})

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				encoder := json.NewEncoder(conn)
				for scanner.Scan() {
					var req ipcRequest
					if json.Unmarshal(scanner.Bytes(), &req) != nil {
						return
					}
					commands <- req.Command

					if req.Command[0] == "observe_property" {
						_ = encoder.Encode(map[string]any{"event": "property-change", "name": req.Command[2], "data": true})
						continue
					}

					reply := ipcReply{Error: "success"}
					if req.Command[0] == "get_property" {
						value, ok := properties[req.Command[1].(string)]
						if !ok {
							reply.Error = "property unavailable"
						}
						reply.Data = value
					}
					_ = encoder.Encode(map[string]any{"event": "playback-restart"})
					_ = encoder.Encode(reply)
				}
			}(conn)
		}
	}()

	return socket, commands
}

func TestIPC(t *testing.T) {
	Convey("Given a fake mpv socket", t, func() {
		socket, commands := fakeMPV(t, map[string]any{"time-pos": 12.5})

		Convey("Properties should be read past interleaved events", func() {
			pos, err := floatProperty(socket, "time-pos")
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 12.5)
		})

		Convey("A missing property should be reported as unavailable", func() {
			_, err := floatProperty(socket, "duration")
			So(err, ShouldEqual, errPropertyUnavailable)
		})

		Convey("The resource should translate transport commands", func() {
			r := &mpvResource{socket: socket, exited: make(chan struct{})}

			So(r.SetVolume(0.5), ShouldBeNil)
			So(<-commands, ShouldResemble, []any{"set_property", "volume", 50.0})

			So(r.SetRate(1.5), ShouldBeNil)
			So(<-commands, ShouldResemble, []any{"set_property", "speed", 1.5})

			position, err := r.Position()
			So(err, ShouldBeNil)
			So(position, ShouldEqual, 12500*time.Millisecond)
		})

		Convey("Reaching the end should be observed through events", func() {
			r := &mpvResource{socket: socket, exited: make(chan struct{})}
			r.events = NewEventListener(socket, r.handle, "eof-reached")
			So(r.events.Start(), ShouldBeNil)
			defer r.events.Stop()

			deadline := time.Now().Add(time.Second)
			for !r.Ended() && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			So(r.Ended(), ShouldBeTrue)
		})
	})
}
