package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/listdb/api/apidocumentv1"
	"github.com/fulldump/listdb/service"
)

func Build(s service.Servicer, version, apiKey, apiSecret string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
		Authenticate(apiKey, apiSecret),
	)

	apidocumentv1.BuildV1Document(v1, s).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apidocumentv1.SetServicer(ctx, s))
		}
	}
}
