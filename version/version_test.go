package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLatest(t *testing.T) {
	Convey("Given a release feed", t, func() {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = fmt.Fprint(w, `{"tag_name": "v99.0.0", "published_at": "2026-01-02T15:04:05Z"}`)
		}))
		Reset(server.Close)

		previous := releasesAPI
		releasesAPI = server.URL
		Reset(func() {
			releasesAPI = previous
			_ = released.Set(nil)
		})

		Convey("The newest release is fetched once and then cached", func() {
			release, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(release.Version, ShouldEqual, "99.0.0")
			So(release.URL, ShouldEqual, constant.ReleasesURL+"/tag/v99.0.0")
			So(release.Newer(), ShouldBeTrue)

			_, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(requests, ShouldEqual, 1)

			So(announce(release), ShouldContainSubstring, "99.0.0")
		})
	})

	Convey("An older release is not newer", t, func() {
		So((&Release{Version: "0.0.1"}).Newer(), ShouldBeFalse)
		So((&Release{Version: "not a version"}).Newer(), ShouldBeFalse)
	})
}
