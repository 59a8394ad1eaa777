package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/listdb/api/apidocumentv1"
	"github.com/fulldump/listdb/database"
	"github.com/fulldump/listdb/document"
	"github.com/fulldump/listdb/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// describeError picks the http status and a human description for err.
func describeError(ctx context.Context, err error) (int, string) {

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "user is not authenticated"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "request rate limit exceeded, retry later"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "service is not ready, retry later"
	case errors.Is(err, service.ErrorDocumentNotFound), errors.Is(err, database.ErrDocumentNotFound):
		return http.StatusNotFound, fmt.Sprintf("document '%s' not found", box.GetUrlParameter(ctx, "documentName"))
	case errors.Is(err, service.ErrorDocumentAlreadyExists), errors.Is(err, database.ErrDocumentExists):
		return http.StatusConflict, "document already exists"
	case errors.Is(err, database.ErrInvalidName):
		return http.StatusBadRequest, "document name must not be empty nor contain path separators"
	case errors.Is(err, document.ErrKeyNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, document.ErrFields):
		return http.StatusBadRequest, "record must be a flat object of strings and primitives"
	case errors.Is(err, document.ErrMalformed):
		return http.StatusUnprocessableEntity, "document file is malformed"
	case errors.Is(err, apidocumentv1.ErrBadMode):
		return http.StatusBadRequest, "bad find mode"
	case errors.As(err, &syntaxError), errors.As(err, &typeError), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Malformed JSON"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := describeError(ctx, err)
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
