package api

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/listdb/database"
	"github.com/fulldump/listdb/service"
)

func TestCompression(t *testing.T) {

	biff.Alternative("Compression", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Dir: t.TempDir(),
		})
		biff.AssertNil(db.Load())

		b := Build(service.NewService(db), "test", "", "")
		b.WithInterceptors(
			Compression,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("Gzip accepted", func(a *biff.A) {
			resp := api.Request("GET", "/v1/documents").
				WithHeader("Accept-Encoding", "gzip").
				Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.Header.Get("Content-Encoding"), "gzip")

			gz, err := gzip.NewReader(bytes.NewReader(resp.BodyBytes()))
			biff.AssertNil(err)
			body, err := io.ReadAll(gz)
			biff.AssertNil(err)
			biff.AssertEqual(string(body), "[]\n")
		})

		a.Alternative("Plain", func(a *biff.A) {
			resp := api.Request("GET", "/v1/documents").
				WithHeader("Accept-Encoding", "identity").
				Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.Header.Get("Content-Encoding"), "")
			biff.AssertEqual(resp.BodyString(), "[]\n")
		})
	})
}
