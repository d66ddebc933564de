package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare component by component", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"v0.3.1", "0.3.0", 1},
			{"0.2.9", "0.3.0", -1},
			{"1.0.0", "0.99.99", 1},
			{"0.4.0-rc.1", "0.4.0", -1},
			{"0.4.0", "0.4.0-rc.2", 1},
			{"0.4.0-rc.2", "0.4.0-rc.1", 1},
			{"0.4.0+build.7", "0.4.0", 0},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		Convey("Malformed versions are rejected", func() {
			_, err := Compare("latest", "0.3.0")
			So(err, ShouldNotBeNil)

			_, err = Compare("0.3", "0.3.0")
			So(err, ShouldNotBeNil)
		})
	})
}
