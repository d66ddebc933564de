package util

import (
	"testing"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("the  little star"), ShouldEqual, "the_little_star")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "story", "stories"), ShouldEqual, "1 story")
		So(Quantify(3, "story", "stories"), ShouldEqual, "3 stories")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
		So(Capitalize("żółw"), ShouldEqual, "Żółw")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(1.5, 0.0, 1.0), ShouldEqual, 1.0)
		So(Clamp(-3, 0, 10), ShouldEqual, 0)
		So(Clamp(0.75, 0.5, 2.0), ShouldEqual, 0.75)
		So(Max[int](), ShouldEqual, 0)
		So(Min(3, 1, 2), ShouldEqual, 1)
	})
}

func TestFormatClock(t *testing.T) {
	Convey("FormatClock", t, func() {
		So(FormatClock(0), ShouldEqual, "0:00")
		So(FormatClock(65*time.Second), ShouldEqual, "1:05")
		So(FormatClock(15*time.Minute), ShouldEqual, "15:00")
		So(FormatClock(time.Hour+2*time.Minute+3*time.Second), ShouldEqual, "1:02:03")
		So(FormatClock(-time.Second), ShouldEqual, "0:00")
		So(FormatClock(1500*time.Millisecond), ShouldEqual, "0:01")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		fs := filesystem.API()
		So(fs.WriteFile("/tmp/delete-me/a.txt", []byte("x"), 0o644), ShouldBeNil)

		Convey("Delete should remove it recursively", func() {
			So(Delete("/tmp/delete-me"), ShouldBeNil)
			So(lo.Must(fs.Exists("/tmp/delete-me")), ShouldBeFalse)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Given a stack with two items", t, func() {
		var s Stack[string]
		s.Push("list")
		s.Push("player")

		Convey("Items come back in reverse order", func() {
			top, ok := s.Peek()
			So(ok, ShouldBeTrue)
			So(top, ShouldEqual, "player")

			item, ok := s.Pop()
			So(ok, ShouldBeTrue)
			So(item, ShouldEqual, "player")

			item, _ = s.Pop()
			So(item, ShouldEqual, "list")
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Popping an empty stack reports it", func() {
			s.Clear()
			_, ok := s.Pop()
			So(ok, ShouldBeFalse)
		})
	})
}
