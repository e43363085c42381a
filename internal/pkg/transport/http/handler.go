package http

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

type DecodeRequestFunc func(r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc adapts a go-kit endpoint to a plain http.HandlerFunc:
// decode the request, run the endpoint, encode the response, with all
// errors funneled through ErrorResponse.
func MakeHandlerFunc(ep endpoint.Endpoint,
	decode DecodeRequestFunc,
	encode EncodeResponseFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decode(r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := encode(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}

// DecodeRequest decodes a JSON body into T. When *T implements
// render.Binder its Bind hook runs after decoding, which is where request
// validation lives.
func DecodeRequest[T any](r *http.Request) (interface{}, error) {
	request := new(T)

	if binder, ok := any(request).(render.Binder); ok {
		if err := render.Bind(r, binder); err != nil {
			return nil, err
		}

		return request, nil
	}

	if err := render.DecodeJSON(r.Body, request); err != nil {
		return nil, err
	}

	return request, nil
}
