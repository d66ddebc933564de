package story

import (
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func fixtures() []*Story {
	return []*Story{
		{ID: "1", Title: "The Little Star", Slug: "the-little-star", ReadingTime: 3, AgeGroup: "3-5",
			Tags: []string{"Magic", "Stars"}, Content: "A lonely star sprinkles stardust.",
			Audio: &Audio{URL: "https://cdn/star.wav", Duration: 180}, CreatedAt: day(1)},
		{ID: "2", Title: "brave Rabbit", Slug: "brave-rabbit", ReadingTime: 4, AgeGroup: "6-8",
			Tags: []string{"Animals", "Friendship"}, Content: "Ruby hops through the forest.", CreatedAt: day(3)},
		{ID: "3", Title: "Magic Garden", Slug: "magic-garden", ReadingTime: 5, AgeGroup: "9-12",
			Tags: []string{"Magic"}, Description: "Flowers that sing lullabies.",
			Audio: &Audio{URL: "https://cdn/garden.wav"}, CreatedAt: day(2)},
	}
}

func ids(stories []*Story) []string {
	return lo.Map(stories, func(s *Story, _ int) string { return s.ID })
}

func TestFilters(t *testing.T) {
	Convey("Given three stories", t, func() {
		stories := fixtures()

		Convey("Empty filters should keep everything, newest first", func() {
			So(ids(Filters{}.Apply(stories)), ShouldResemble, []string{"2", "3", "1"})
			So(ids(stories), ShouldResemble, []string{"1", "2", "3"})
		})

		Convey("Each sort order should be honored", func() {
			So(ids(Filters{SortBy: SortOldest}.Apply(stories)), ShouldResemble, []string{"1", "3", "2"})
			So(ids(Filters{SortBy: SortTitle}.Apply(stories)), ShouldResemble, []string{"2", "3", "1"})
			So(ids(Filters{SortBy: SortReadingTime}.Apply(stories)), ShouldResemble, []string{"1", "2", "3"})
		})

		Convey("The query should search title, description, content and tags", func() {
			So(ids(Filters{Query: "STAR"}.Apply(stories)), ShouldResemble, []string{"1"})
			So(ids(Filters{Query: "lullabies"}.Apply(stories)), ShouldResemble, []string{"3"})
			So(ids(Filters{Query: "forest"}.Apply(stories)), ShouldResemble, []string{"2"})
			So(ids(Filters{Query: "friendship"}.Apply(stories)), ShouldResemble, []string{"2"})
			So(Filters{Query: "dragons"}.Apply(stories), ShouldBeEmpty)
		})

		Convey("Tags should match by name or slug, any of them", func() {
			So(ids(Filters{Tags: []string{"magic"}, SortBy: SortOldest}.Apply(stories)), ShouldResemble, []string{"1", "3"})
			So(ids(Filters{Tags: []string{"stars", "animals"}, SortBy: SortOldest}.Apply(stories)), ShouldResemble, []string{"1", "2"})
		})

		Convey("Age groups and audio should narrow the result", func() {
			So(ids(Filters{AgeGroups: []string{"6-8", "9-12"}, SortBy: SortOldest}.Apply(stories)), ShouldResemble, []string{"3", "2"})
			So(ids(Filters{HasAudio: true, SortBy: SortOldest}.Apply(stories)), ShouldResemble, []string{"1", "3"})
			So(ids(Filters{HasAudio: true, AgeGroups: []string{"3-5"}}.Apply(stories)), ShouldResemble, []string{"1"})
		})
	})

	Convey("ParseSortBy", t, func() {
		So(lo.Must(ParseSortBy("")), ShouldEqual, SortNewest)
		So(lo.Must(ParseSortBy("Title")), ShouldEqual, SortTitle)
		_, err := ParseSortBy("popularity")
		So(err, ShouldNotBeNil)
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given 45 items", t, func() {
		items := lo.Range(45)

		Convey("The first page should hold the limit", func() {
			p := Paginate(items, 1, 20)
			So(p.Items, ShouldResemble, lo.Range(20))
			So(p.TotalPages, ShouldEqual, 3)
			So(p.HasNext(), ShouldBeTrue)
			So(p.HasPrev(), ShouldBeFalse)
		})

		Convey("The last page should hold the remainder", func() {
			p := Paginate(items, 3, 20)
			So(p.Items, ShouldResemble, []int{40, 41, 42, 43, 44})
			So(p.HasNext(), ShouldBeFalse)
			So(p.HasPrev(), ShouldBeTrue)
		})

		Convey("A page past the end should be empty", func() {
			p := Paginate(items, 4, 20)
			So(p.Items, ShouldBeEmpty)
			So(p.HasNext(), ShouldBeFalse)
		})

		Convey("Out of range arguments should be clamped", func() {
			p := Paginate(items, 0, 0)
			So(p.Page, ShouldEqual, 1)
			So(p.Limit, ShouldEqual, 1)
			So(Paginate(items, 1, 1000).Limit, ShouldEqual, MaxPageSize)
		})
	})
}

func TestStory(t *testing.T) {
	Convey("Story helpers", t, func() {
		s := fixtures()[0]
		s.Content = "First.\n\n\n\nSecond.\n\n  "

		So(s.HasAudio(), ShouldBeTrue)
		So(s.Audio.Length(), ShouldEqual, 3*time.Minute)
		So(s.Paragraphs(), ShouldResemble, []string{"First.", "Second."})
		So(s.HasTag("STARS"), ShouldBeTrue)
		So((&Story{Audio: &Audio{}}).HasAudio(), ShouldBeFalse)

		So(Slugify("The Brave  Little Rabbit!"), ShouldEqual, "the-brave-little-rabbit")
		So(ValidAgeGroup("6-8"), ShouldBeTrue)
		So(ValidAgeGroup("13-15"), ShouldBeFalse)
		So(ValidLanguage("pl"), ShouldBeTrue)
	})
}
