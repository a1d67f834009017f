package specfield_test

import (
	"testing"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/specfield"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFirst(t *testing.T) {
	Convey("Given a specification bag with synonyms", t, func() {
		specs := model.Specs{
			"尺寸": "-",
			"寸":  "  ",
			"桨叶": "5寸",
			"KV": 2600,
		}

		Convey("When the preferred keys are placeholders or blank", func() {
			v, ok := specfield.First(specs, "尺寸", "寸", "桨叶")

			Convey("Then the first usable synonym wins", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "5寸")
			})
		})

		Convey("When a numeric value is read as a string", func() {
			v, ok := specfield.First(specs, "KV")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "2600")
		})

		Convey("When no key is present", func() {
			v, ok := specfield.First(specs, "重量")
			So(ok, ShouldBeFalse)
			So(v, ShouldEqual, "")
		})

		Convey("When the bag is nil", func() {
			_, ok := specfield.First(nil, "尺寸")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNumber(t *testing.T) {
	Convey("Given values of mixed types", t, func() {
		So(specfield.Number(6), ShouldEqual, 6)
		So(specfield.Number(30.5), ShouldEqual, 30.5)
		So(specfield.Number("2207"), ShouldEqual, 2207)
		So(specfield.Number(" 45 "), ShouldEqual, 45)

		Convey("Then unparseable input is treated as unknown", func() {
			So(specfield.Number("6S"), ShouldEqual, 0)
			So(specfield.Number("abc"), ShouldEqual, 0)
			So(specfield.Number(nil), ShouldEqual, 0)
			So(specfield.Number([]string{"1"}), ShouldEqual, 0)
			So(specfield.Number("NaN"), ShouldEqual, 0)
			So(specfield.Number(true), ShouldEqual, 0)
		})
	})
}

func TestTokens(t *testing.T) {
	Convey("Given free-text size values", t, func() {
		So(specfield.SizeToken("5寸"), ShouldEqual, "5寸")
		So(specfield.SizeToken("5 寸"), ShouldEqual, "5寸")
		So(specfield.SizeToken("5.1寸三叶"), ShouldEqual, "51寸")
		So(specfield.SizeToken("large"), ShouldEqual, "")

		Convey("Then containment works in either direction", func() {
			So(specfield.ContainsEither("5寸", "5寸"), ShouldBeTrue)
			So(specfield.ContainsEither("5寸", "3寸"), ShouldBeFalse)
			So(specfield.ContainsEither("2207", "07"), ShouldBeTrue)
		})

		Convey("And the known 2.5寸 false positive is preserved", func() {
			So(specfield.ContainsEither(specfield.SizeToken("2.5寸"), "5寸"), ShouldBeTrue)
		})
	})

	Convey("Given mount pattern values", t, func() {
		So(specfield.MountToken("30.5x30.5mm"), ShouldEqual, "30.530.5")
		So(specfield.MountToken("M3 20mm"), ShouldEqual, "320")
	})
}

func TestAccessors(t *testing.T) {
	Convey("Given a motor and a battery", t, func() {
		motor := model.Specs{"kv": "1950", "最大电流": 42}
		battery := model.Specs{"节": 6}

		Convey("Then numeric accessors resolve synonyms", func() {
			kv, ok := specfield.KV(motor)
			So(ok, ShouldBeTrue)
			So(kv, ShouldEqual, 1950)

			cells, ok := specfield.Cells(battery)
			So(ok, ShouldBeTrue)
			So(cells, ShouldEqual, 6)

			amps, ok := specfield.MotorMaxCurrent(motor)
			So(ok, ShouldBeTrue)
			So(amps, ShouldEqual, 42)
		})

		Convey("And zero or garbage reads as unknown", func() {
			_, ok := specfield.KV(model.Specs{"KV": 0})
			So(ok, ShouldBeFalse)
			_, ok = specfield.Cells(model.Specs{"S": "6S"})
			So(ok, ShouldBeFalse)
			_, ok = specfield.ESCCurrent(model.Specs{})
			So(ok, ShouldBeFalse)
		})

		Convey("And size tokens are normalized", func() {
			size, ok := specfield.Size(model.Specs{"尺寸": "5 寸"})
			So(ok, ShouldBeTrue)
			So(size, ShouldEqual, "5寸")

			_, ok = specfield.Size(model.Specs{"尺寸": "mini"})
			So(ok, ShouldBeFalse)
		})
	})
}
