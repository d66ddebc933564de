package style

import (
	"testing"

	"github.com/bedtime-cli/bedtime/color"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNightMode(t *testing.T) {
	Convey("Given the evening theme", t, func() {
		SetNightMode(false)
		Reset(func() { SetNightMode(false) })

		So(NightMode(), ShouldBeFalse)
		So(Theme(), ShouldResemble, color.Evening)

		Convey("Night mode swaps the theme", func() {
			SetNightMode(true)
			So(NightMode(), ShouldBeTrue)
			So(Theme(), ShouldResemble, color.Night)
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Rendered text keeps its content", t, func() {
		So(Bold("moon"), ShouldContainSubstring, "moon")
		So(Title("Stories"), ShouldContainSubstring, "Stories")
		So(AgeTag("3-5"), ShouldContainSubstring, "3-5")
		So(Fg(color.Moon)("stars"), ShouldContainSubstring, "stars")
	})
}
