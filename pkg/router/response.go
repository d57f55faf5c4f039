package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// StatusCoder lets a response override the default 200 status.
type StatusCoder interface {
	StatusCode() int
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp any) {
	status := http.StatusOK
	if coder, ok := resp.(StatusCoder); ok {
		status = coder.StatusCode()
	}

	if err := writeJson(w, status, resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	resp := errorResponse{Detail: errx.Message}
	if err := writeJson(w, errx.Code.StatusCode(), resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func writeJson(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
