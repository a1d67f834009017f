package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/stiyes/fpvforge/internal/app"
	"github.com/stiyes/fpvforge/internal/domain/browse"
	"github.com/stiyes/fpvforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service on a fresh database", t, func() {
		dbPath := filepath.Join(t.TempDir(), "fpvforge.db")
		svc := service.New(service.WithDatabasePath(dbPath))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats(ctx)["started"], ShouldEqual, true)
			})

			Convey("And the bundled catalog should be seeded", func() {
				page, err := svc.Browse(ctx, browse.Query{PageSize: browse.MaxPageSize})
				So(err, ShouldBeNil)
				So(page.Total, ShouldBeGreaterThan, model.SlotCount)
			})

			Convey("And a bundled build should evaluate end to end", func() {
				eval, err := svc.Evaluate(ctx, map[model.Slot]string{
					model.SlotFrame:     "frame-apex-5",
					model.SlotPropeller: "prop-gf-7040",
					model.SlotMotor:     "motor-xing2-2207",
				})
				So(err, ShouldBeNil)
				So(eval.Warnings, ShouldHaveLength, 1)
				So(eval.Totals.Count, ShouldEqual, 3)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})

		Convey("When the service is restarted on the same database", func() {
			So(svc.Start(ctx), ShouldBeNil)
			saved, err := svc.SaveBuild(ctx, service.BuildRequest{
				Name:  "keep me",
				Parts: map[model.Slot]string{model.SlotFrame: "frame-apex-5"},
			})
			So(err, ShouldBeNil)
			svc.Stop()

			again := service.New(service.WithDatabasePath(dbPath), service.WithSeedPath("/nonexistent/seed.yaml"))
			err = again.Start(ctx)
			defer again.Stop()

			Convey("Then saved builds survive and the seed is not reloaded", func() {
				So(err, ShouldBeNil)
				got, err := again.Build(ctx, saved.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "keep me")
			})
		})
	})

	Convey("Given a custom seed file", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		seed := filepath.Join(dir, "seed.yaml")
		doc := "components:\n  - id: only-frame\n    category: frame\n    price: 100\n"
		So(os.WriteFile(seed, []byte(doc), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithDatabasePath(filepath.Join(dir, "custom.db")),
			service.WithSeedPath(seed),
		)
		err := svc.Start(ctx)
		defer svc.Stop()

		Convey("Then the catalog holds only that file", func() {
			So(err, ShouldBeNil)
			page, err := svc.Browse(ctx, browse.Query{})
			So(err, ShouldBeNil)
			So(page.Total, ShouldEqual, 1)
		})
	})

	Convey("Given an unreadable seed file", t, func() {
		dir := t.TempDir()
		svc := service.New(
			service.WithDatabasePath(filepath.Join(dir, "broken.db")),
			service.WithSeedPath(filepath.Join(dir, "missing.yaml")),
		)

		Convey("Then Start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
			So(svc.GetStats(context.Background())["started"], ShouldEqual, false)
		})
	})
}
