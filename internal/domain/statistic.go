package domain

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

const apiVersion = "1.0.0"

type StatisticDomain interface {
	GetRoot(context.Context, *model.GetRootRequest) (*model.GetRootResponse, error)
	GetHealth(context.Context, *model.GetHealthRequest) (*model.GetHealthResponse, error)
}

type statisticDomain struct{}

func NewStatisticDomain() *statisticDomain {
	return &statisticDomain{}
}

func (d *statisticDomain) GetRoot(
	ctx context.Context, req *model.GetRootRequest,
) (*model.GetRootResponse, error) {
	return &model.GetRootResponse{
		Message: "Simple Social Board API",
		Version: apiVersion,
	}, nil
}

// GetHealth pings the database so load balancers stop routing to an instance
// that lost its connection.
func (d *statisticDomain) GetHealth(
	ctx context.Context, req *model.GetHealthRequest,
) (*model.GetHealthResponse, error) {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get database handle: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Database is not available")
	}

	if err := db.PingContext(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ping database: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Database is not available")
	}

	return &model.GetHealthResponse{Status: "ok"}, nil
}
