package auth

import (
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestAPIKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		So(DeleteAPIKey(), ShouldBeNil)

		Convey("APIKey should be empty without an error", func() {
			key, err := APIKey()
			So(err, ShouldBeNil)
			So(key, ShouldBeEmpty)
		})

		Convey("A stored key should be returned", func() {
			So(SetAPIKey("  anon-key  "), ShouldBeNil)
			key, err := APIKey()
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "anon-key")
		})

		Convey("The environment should win over the keyring", func() {
			So(SetAPIKey("stored"), ShouldBeNil)
			So(os.Setenv(EnvAPIKey, "from-env"), ShouldBeNil)
			Reset(func() { _ = os.Unsetenv(EnvAPIKey) })

			So(lo.Must(APIKey()), ShouldEqual, "from-env")
		})

		Convey("An empty key should be rejected", func() {
			So(SetAPIKey(" "), ShouldNotBeNil)
		})
	})
}
