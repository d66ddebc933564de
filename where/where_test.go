package where

import (
	"path/filepath"
	"testing"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Directory resolvers", t, func() {
		for name, resolve := range map[string]func() string{
			"Config":    Config,
			"Cache":     Cache,
			"Logs":      Logs,
			"Downloads": Downloads,
			"Audio":     Audio,
			"Temp":      Temp,
		} {
			Convey(name+"() should exist as a directory", func() {
				path := resolve()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}
	})

	Convey("File resolvers", t, func() {
		Convey("Should live under their parent directories", func() {
			So(filepath.Dir(History()), ShouldEqual, Config())
			So(filepath.Dir(Favorites()), ShouldEqual, Config())
			So(filepath.Dir(Preferences()), ShouldEqual, Config())
			So(filepath.Dir(Catalog()), ShouldEqual, Cache())
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})
	})

	Convey("Given a config path override", t, func() {
		t.Setenv(EnvConfigPath, "/tmp/bedtime-test-config")

		Convey("Config() should honour it", func() {
			So(Config(), ShouldEqual, "/tmp/bedtime-test-config")
		})
	})
}
