package preferences_test

import (
	"testing"

	"github.com/bedtime-cli/bedtime/config"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/preferences"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

func TestPreferences(t *testing.T) {
	Convey("Given no stored preferences", t, func() {
		So(preferences.Reset(), ShouldBeNil)

		Convey("Load should return the config defaults", func() {
			prefs := lo.Must(preferences.Load())
			So(prefs, ShouldResemble, preferences.Defaults())
			So(prefs.Language, ShouldEqual, "en")
			So(prefs.SleepTimer, ShouldEqual, 15)
			So(prefs.AudioSpeed, ShouldEqual, 1.0)
			So(prefs.FontSize, ShouldEqual, preferences.FontMedium)
			So(prefs.AgeGroups, ShouldResemble, []string{"3-5", "6-8", "9-12"})
			So(prefs.Validate(), ShouldBeNil)
		})

		Convey("When a preference is set", func() {
			_, err := preferences.Set("font_size", "Large")
			So(err, ShouldBeNil)

			Convey("Then it should be stored over the defaults", func() {
				So(lo.Must(preferences.Load()).FontSize, ShouldEqual, preferences.FontLarge)
			})

			Convey("And defaults changed later should still apply to the rest", func() {
				viper.Set(key.SleepDefaultMinutes, 30)
				Reset(func() { viper.Set(key.SleepDefaultMinutes, 15) })

				prefs := lo.Must(preferences.Load())
				So(prefs.SleepTimer, ShouldEqual, 30)
				So(prefs.FontSize, ShouldEqual, preferences.FontLarge)
			})

			Convey("And reset should restore the defaults", func() {
				So(preferences.Reset(), ShouldBeNil)
				So(lo.Must(preferences.Load()).FontSize, ShouldEqual, preferences.FontMedium)
			})
		})

		Convey("Set should parse every kind of value", func() {
			prefs, err := preferences.Set("age_groups", "3-5, 6-8,3-5")
			So(err, ShouldBeNil)
			So(prefs.AgeGroups, ShouldResemble, []string{"3-5", "6-8"})

			prefs = lo.Must(preferences.Set("audio_speed", "1.25x"))
			So(prefs.AudioSpeed, ShouldEqual, 1.25)

			prefs = lo.Must(preferences.Set("night_mode", "true"))
			So(prefs.NightMode, ShouldBeTrue)

			prefs = lo.Must(preferences.Set("sleep_timer", "45"))
			So(prefs.SleepTimer, ShouldEqual, 45)
		})

		Convey("Invalid values should not be saved", func() {
			_, err := preferences.Set("sleep_timer", "soon")
			So(err, ShouldNotBeNil)

			_, err = preferences.Set("audio_speed", "3")
			So(err, ShouldNotBeNil)

			_, err = preferences.Set("language", "de")
			So(err, ShouldNotBeNil)

			_, err = preferences.Set("age_groups", "13-18")
			So(err, ShouldNotBeNil)

			_, err = preferences.Set("colour", "blue")
			So(err, ShouldNotBeNil)

			So(lo.Must(preferences.Load()), ShouldResemble, preferences.Defaults())
		})

		Convey("Names should be sorted", func() {
			So(preferences.Names()[0], ShouldEqual, "age_groups")
			So(len(preferences.Names()), ShouldEqual, 8)
		})
	})
}

func TestReaderWidth(t *testing.T) {
	Convey("The reader width follows the font size", t, func() {
		prefs := preferences.Defaults()
		So(prefs.ReaderWidth(80), ShouldEqual, 80)

		prefs.FontSize = preferences.FontSmall
		So(prefs.ReaderWidth(80), ShouldEqual, 100)

		prefs.FontSize = preferences.FontLarge
		So(prefs.ReaderWidth(80), ShouldEqual, 60)
	})
}
