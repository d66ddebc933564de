package open

import (
	"testing"

	"github.com/bedtime-cli/bedtime/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Handlers are chosen per platform", t, func() {
		cmd, err := command(constant.Linux, "https://example.com/moon.png", "")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://example.com/moon.png"})

		cmd, err = command(constant.Darwin, "/tmp/moon.png", "Preview")
		So(err, ShouldBeNil)
		So(cmd.Args, ShouldResemble, []string{"open", "-a", "Preview", "/tmp/moon.png"})

		cmd, err = command(constant.Windows, "https://example.com/?a=1&b=2", "firefox")
		So(err, ShouldBeNil)
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://example.com/?a=1^&b=2")

		Convey("Unknown platforms and empty input fail", func() {
			_, err := command("plan9", "x", "")
			So(err, ShouldNotBeNil)

			_, err = command(constant.Linux, "", "")
			So(err, ShouldNotBeNil)
		})
	})
}
