package cmd

import (
	"testing"

	"github.com/bedtime-cli/bedtime/config"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestParseValue(t *testing.T) {
	Convey("Given config values from the command line", t, func() {
		So(config.Setup(), ShouldBeNil)

		Convey("Floats are parsed for float keys", func() {
			v, err := parseValue(key.AudioVolume, []string{"0.4"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.4)
		})

		Convey("Integers are parsed for int keys", func() {
			v, err := parseValue(key.CatalogPageSize, []string{"12"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 12)

			_, err = parseValue(key.CatalogPageSize, []string{"twelve"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are parsed for bool keys", func() {
			v, err := parseValue(key.LogsWrite, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("A missing value is rejected", func() {
			_, err := parseValue(key.CatalogSource, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A misspelled key suggests the closest one", func() {
			_, err := parseValue("audio.volum", []string{"1"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.AudioVolume)
		})
	})
}

func TestPersistRollback(t *testing.T) {
	Convey("Given a volume out of range", t, func() {
		So(config.Setup(), ShouldBeNil)

		previous := viper.Get(key.AudioVolume)
		viper.Set(key.AudioVolume, 3.0)

		Convey("It is not saved and the previous value comes back", func() {
			So(persist(key.AudioVolume, previous), ShouldNotBeNil)
			So(viper.GetFloat64(key.AudioVolume), ShouldEqual, previous)
		})
	})
}

func TestErrUnknownTag(t *testing.T) {
	Convey("Given the catalog tags", t, func() {
		tags := []*story.Tag{{Slug: "animals"}, {Slug: "bedtime"}, {Slug: "space"}}

		Convey("The closest tag is suggested", func() {
			err := errUnknownTag("animls", tags)
			So(err.Error(), ShouldContainSubstring, "animls")
			So(err.Error(), ShouldContainSubstring, "did you mean")
			So(err.Error(), ShouldContainSubstring, "animals")
		})

		Convey("Without tags there is nothing to suggest", func() {
			err := errUnknownTag("animls", nil)
			So(err.Error(), ShouldNotContainSubstring, "did you mean")
		})
	})
}

func TestEnvVars(t *testing.T) {
	Convey("Every environment variable is listed once and sorted", t, func() {
		vars := envVars()

		So(vars, ShouldContain, where.EnvConfigPath)
		So(vars, ShouldContain, "BEDTIME_AUDIO_VOLUME")
		So(slices.IsSorted(vars), ShouldBeTrue)
	})
}

func TestFilterFlags(t *testing.T) {
	Convey("Given a command with filter flags", t, func() {
		So(config.Setup(), ShouldBeNil)

		cmd := &cobra.Command{Use: "test"}
		addFilterFlags(cmd)

		Convey("The limit falls back to the configured page size", func() {
			So(limit(cmd), ShouldEqual, viper.GetInt(key.CatalogPageSize))

			So(cmd.Flags().Set("limit", "5"), ShouldBeNil)
			So(limit(cmd), ShouldEqual, 5)
		})

		Convey("Filters are read from the flags", func() {
			So(cmd.Flags().Set("sort", "title"), ShouldBeNil)
			So(cmd.Flags().Set("age", "3-5"), ShouldBeNil)
			So(cmd.Flags().Set("audio", "true"), ShouldBeNil)

			filters, err := filtersFromFlags(cmd)
			So(err, ShouldBeNil)
			So(filters.SortBy, ShouldEqual, story.SortTitle)
			So(filters.AgeGroups, ShouldResemble, []string{"3-5"})
			So(filters.HasAudio, ShouldBeTrue)
		})

		Convey("An unknown age group is rejected", func() {
			So(cmd.Flags().Set("age", "1-2"), ShouldBeNil)

			_, err := filtersFromFlags(cmd)
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown sort order is rejected", func() {
			So(cmd.Flags().Set("sort", "random"), ShouldBeNil)

			_, err := filtersFromFlags(cmd)
			So(err, ShouldNotBeNil)
		})
	})
}
