package query

import (
	"testing"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestSuggestions(t *testing.T) {
	Convey("Given a few remembered searches", t, func() {
		So(Remember("rabbit", 1), ShouldBeNil)
		So(Remember("  Rainbow   FISH ", 10), ShouldBeNil)
		So(Remember("   ", 100), ShouldBeNil)

		Convey("The most searched comes first", func() {
			So(SuggestMany("ra"), ShouldResemble, []string{"rainbow fish", "rabbit"})
			So(Suggest("rbt").MustGet(), ShouldEqual, "rabbit")
		})

		Convey("Blank queries are not remembered", func() {
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("A new search refreshes the suggestions", func() {
			So(SuggestMany("owl"), ShouldBeEmpty)
			So(Remember("Owl", 1), ShouldBeNil)
			So(SuggestMany("owl"), ShouldResemble, []string{"owl"})
		})

		Convey("Nothing is suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			Reset(func() { viper.Set(key.SearchShowQuerySuggestions, true) })

			So(SuggestMany("ra"), ShouldBeEmpty)
			So(Suggest("ra").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Queries are normalized", t, func() {
		So(normalize("  Sleepy   BEAR "), ShouldEqual, "sleepy bear")
	})
}
