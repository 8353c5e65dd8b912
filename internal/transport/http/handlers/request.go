package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/middleware"
)

var (
	errInvalidBody      = apperror.New(apperror.KindValidation, "Invalid request body")
	errBodyTooLarge     = apperror.New(apperror.KindPayloadTooLarge, "Request entity too large")
	errNotAuthenticated = apperror.Unauthorized("User not authenticated")
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.Wrap(errBodyTooLarge.Kind, errBodyTooLarge.Message, err)
		}
		return apperror.Wrap(errInvalidBody.Kind, errInvalidBody.Message, err)
	}
	return nil
}

func principal(r *http.Request) (auth.Principal, error) {
	p, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		return auth.Principal{}, errNotAuthenticated
	}
	return p, nil
}
