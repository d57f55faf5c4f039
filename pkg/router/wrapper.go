package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/gorilla/mux"
	"github.com/mitchellh/mapstructure"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := append([]MiddlewareFunc{}, router.befores...)
	closers := append([]CloserFunc{}, router.closers...)

	return func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := router.baseContext(httpReq)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		for _, middleware := range befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				writeError(ctx, w, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		var req Request
		if err := bindRequest(httpReq, method, &req); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot bind the request: %v", err)
			errx := errorx.New(errorx.BadRequest, "Cannot bind the request")
			ctx = xcontext.WithError(ctx, errx)
			writeError(ctx, w, errx)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, w, err)
			return
		}

		if resp != nil {
			writeResponse(ctx, w, resp)
		}
	}
}

func bindRequest(httpReq *http.Request, method string, out any) error {
	params := map[string]any{}
	for key, value := range mux.Vars(httpReq) {
		params[key] = value
	}

	for key, values := range httpReq.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	if method == "POST" || method == "PUT" {
		mediaType, _, _ := mime.ParseMediaType(httpReq.Header.Get("Content-Type"))
		switch mediaType {
		case "application/json", "":
			body := map[string]any{}
			err := json.NewDecoder(httpReq.Body).Decode(&body)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}

			for key, value := range body {
				params[key] = value
			}

		case "application/x-www-form-urlencoded":
			if err := httpReq.ParseForm(); err != nil {
				return err
			}

			for key, values := range httpReq.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}
		}

		// Multipart bodies are read by the handler itself.
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(params)
}
