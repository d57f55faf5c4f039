package testutil

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/search"
)

type MockSearchCaller struct {
	IndexPostFunc  func(ctx context.Context, id string, data search.PostData) error
	DeletePostFunc func(ctx context.Context, id string) error
	SearchPostFunc func(ctx context.Context, query string, offset, limit int) ([]string, error)
}

func (c *MockSearchCaller) IndexPost(ctx context.Context, id string, data search.PostData) error {
	if c.IndexPostFunc != nil {
		return c.IndexPostFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearchCaller) DeletePost(ctx context.Context, id string) error {
	if c.DeletePostFunc != nil {
		return c.DeletePostFunc(ctx, id)
	}

	return nil
}

func (c *MockSearchCaller) SearchPost(ctx context.Context, query string, offset, limit int) ([]string, error) {
	if c.SearchPostFunc != nil {
		return c.SearchPostFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (c *MockSearchCaller) Close() {}
