package cache

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestKey(t *testing.T) {
	Convey("Key", t, func() {
		Convey("Should be deterministic and keep the extension", func() {
			a := Key("https://cdn.example.com/audio/star.mp3?token=1")
			So(a, ShouldEqual, Key("https://cdn.example.com/audio/star.mp3?token=1"))
			So(strings.HasSuffix(a, ".mp3"), ShouldBeTrue)
		})

		Convey("Should differ between URLs", func() {
			So(Key("https://a/1.mp3"), ShouldNotEqual, Key("https://a/2.mp3"))
		})
	})
}

func TestStoreOpen(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		key := Key("https://cdn.example.com/moon.wav")

		Convey("Open should miss", func() {
			_, ok := Open(key)
			So(ok, ShouldBeFalse)
		})

		Convey("When an entry is stored", func() {
			f, err := Store(key, strings.NewReader("RIFF...."))
			So(err, ShouldBeNil)
			So(string(lo.Must(io.ReadAll(f))), ShouldEqual, "RIFF....")
			_ = f.Close()

			Convey("Open should hit", func() {
				f, ok := Open(key)
				So(ok, ShouldBeTrue)
				_ = f.Close()
			})

			Convey("An expired entry should be collected", func() {
				old := time.Now().Add(-TTL - time.Hour)
				So(filesystem.API().Chtimes(Path(key), old, old), ShouldBeNil)

				_, ok := Open(key)
				So(ok, ShouldBeFalse)

				CollectGarbage()
				So(lo.Must(filesystem.API().Exists(Path(key))), ShouldBeFalse)
			})
		})
	})
}
