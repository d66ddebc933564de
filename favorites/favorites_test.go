package favorites

import (
	"testing"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func ids(entries []*Entry) []string {
	return lo.Map(entries, func(e *Entry, _ int) string { return e.ID })
}

func TestFavorites(t *testing.T) {
	Convey("Given no favorites", t, func() {
		So(cacher.Set([]*Entry{}), ShouldBeNil)

		star := &story.Story{ID: "1", Slug: "the-little-star", Title: "The Little Star"}
		rabbit := &story.Story{ID: "2", Slug: "the-brave-little-rabbit", Title: "The Brave Little Rabbit"}

		Convey("When adding stories", func() {
			So(Add(rabbit), ShouldBeNil)
			So(Add(star), ShouldBeNil)
			So(Add(rabbit), ShouldBeNil)

			Convey("Then they should be listed in insertion order without duplicates", func() {
				So(ids(lo.Must(List())), ShouldResemble, []string{"2", "1"})
				So(lo.Must(Contains("1")), ShouldBeTrue)
				So(lo.Must(List())[0].String(), ShouldEqual, "The Brave Little Rabbit (the-brave-little-rabbit)")
			})

			Convey("And removing one should keep the other", func() {
				So(Remove("2"), ShouldBeNil)
				So(ids(lo.Must(List())), ShouldResemble, []string{"1"})
				So(Remove("404"), ShouldBeNil)
			})
		})

		Convey("Toggle should flip membership", func() {
			added, err := Toggle(star)
			So(err, ShouldBeNil)
			So(added, ShouldBeTrue)
			So(lo.Must(Contains("1")), ShouldBeTrue)

			added, err = Toggle(star)
			So(err, ShouldBeNil)
			So(added, ShouldBeFalse)
			So(lo.Must(Contains("1")), ShouldBeFalse)
		})
	})
}
