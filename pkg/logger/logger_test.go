package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ecoperks/ecosort/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndGet(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When getting the global logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)

			Convey("Then logging at every level does not panic", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug line", logger.String("k", "v"))
					l.Info(ctx, "info line", logger.Int("n", 1))
					l.Warn(ctx, "warn line", logger.Bool("flag", true))
					l.Error(ctx, "error line", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})

			Convey("And Named returns a scoped logger", func() {
				named := l.Named("component")
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "scoped") }, ShouldNotPanic)
			})
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		So(logger.String("k", "v"), ShouldResemble, logger.Field{Key: "k", Value: "v"})
		So(logger.Int("n", 7), ShouldResemble, logger.Field{Key: "n", Value: 7})
		So(logger.Bool("b", true), ShouldResemble, logger.Field{Key: "b", Value: true})
		So(logger.Any("a", 1.5), ShouldResemble, logger.Field{Key: "a", Value: 1.5})

		err := errors.New("boom")
		So(logger.Error(err), ShouldResemble, logger.Field{Key: "error", Value: err})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When applying valid level names", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("INFO"), ShouldBeNil)
			So(logger.SetLevelString("warn"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString(" error "), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("When applying an unknown level name", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("When setting a level directly", func() {
			So(func() { logger.SetLevel(slog.LevelWarn) }, ShouldNotPanic)
		})
	})
}
