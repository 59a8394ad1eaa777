package apidocumentv1

import (
	"context"

	"github.com/fulldump/listdb/service"
)

const ContextServicerKey = "7b1c3a52-8e0d-11ef-a7c4-2f6d0c1e9b10"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}
