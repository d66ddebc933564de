package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func newStory(id string) *story.Story {
	return &story.Story{
		ID:    id,
		Slug:  "story-" + id,
		Title: "Story " + id,
		Audio: &story.Audio{Duration: 180},
	}
}

func ids(entries []*Entry) []string {
	return lo.Map(entries, func(e *Entry, _ int) string { return e.ID })
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		Convey("When saving a story", func() {
			So(Save(newStory("1"), 90*time.Second), ShouldBeNil)

			Convey("Then it should be saved with its progress", func() {
				entries, err := Get()
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
				So(entries[0].Slug, ShouldEqual, "story-1")
				So(entries[0].Listened(), ShouldEqual, 90*time.Second)
				So(entries[0].Progress(), ShouldAlmostEqual, 0.5)
			})

			Convey("And saving it again should keep the furthest progress", func() {
				So(Save(newStory("2"), 0), ShouldBeNil)
				So(Save(newStory("1"), 10*time.Second), ShouldBeNil)

				entries := lo.Must(Get())
				So(ids(entries), ShouldResemble, []string{"1", "2"})
				So(entries[0].ListenedSeconds, ShouldEqual, 90)
			})

			Convey("And a read-only visit should keep the known duration", func() {
				So(Save(&story.Story{ID: "1", Slug: "story-1", Title: "Story 1"}, 0), ShouldBeNil)
				So(Find("1").MustGet().DurationSeconds, ShouldEqual, 180)
			})

			Convey("And it can be removed", func() {
				So(Remove("1"), ShouldBeNil)
				So(Find("1").IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("The history should be capped at the limit", func() {
			viper.Set(key.HistoryLimit, 3)
			Reset(func() { viper.Set(key.HistoryLimit, defaultLimit) })

			for i := 1; i <= 5; i++ {
				So(Save(newStory(fmt.Sprint(i)), 0), ShouldBeNil)
			}

			So(ids(lo.Must(Get())), ShouldResemble, []string{"5", "4", "3"})
		})
	})
}

func TestEntry(t *testing.T) {
	Convey("Given an entry", t, func() {
		e := &Entry{Title: "Moon", ListenedSeconds: 200, DurationSeconds: 100, UpdatedAt: time.Now()}

		Convey("Progress should never exceed one", func() {
			So(e.Progress(), ShouldEqual, 1.0)
		})

		Convey("String should show the listening position", func() {
			So(e.String(), ShouldStartWith, "Moon : 3:20 / 1:40")
		})

		Convey("Read-only entries should say so", func() {
			e.DurationSeconds = 0
			So(e.Progress(), ShouldEqual, 0.0)
			So(e.String(), ShouldStartWith, "Moon, read")
		})
	})
}
