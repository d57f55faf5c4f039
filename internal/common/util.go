package common

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

func MapKeys[K comparable, V any](m map[K]V) []K {
	var result []K
	for k := range m {
		result = append(result, k)
	}
	return result
}

// Pagination normalizes one-indexed page/limit parameters into an offset and
// a bounded limit. Zero values fall back to the configured defaults.
func Pagination(ctx context.Context, page, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer

	if page == 0 {
		page = 1
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if page < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Page must be positive")
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	return (page - 1) * limit, limit, nil
}

// TotalPages is the page count for a collection of total items read limit at
// a time.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}

	return int((total + int64(limit) - 1) / int64(limit))
}
