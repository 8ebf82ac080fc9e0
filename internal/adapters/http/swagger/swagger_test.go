package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecoperks/ecosort/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given a mux with the documentation routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("When fetching the docs page", func() {
			req := httptest.NewRequest(http.MethodGet, "/api-docs", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "redoc")
		})

		Convey("When fetching the OpenAPI document", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
			So(w.Body.String(), ShouldContainSubstring, "openapi: 3.0.3")
			So(w.Body.String(), ShouldContainSubstring, "/rounds")
			So(w.Body.String(), ShouldContainSubstring, "/leaderboard")
		})

		Convey("When registering on a nil mux it panics", func() {
			So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestEmbeddedSpec(t *testing.T) {
	Convey("Given the embedded OpenAPI document", t, func() {
		So(len(swagger.OpenAPI), ShouldBeGreaterThan, 0)
		So(string(swagger.OpenAPI), ShouldContainSubstring, "EcoSort API")
	})
}
