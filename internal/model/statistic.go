package model

type GetRootRequest struct{}

type GetRootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type GetHealthRequest struct{}

type GetHealthResponse struct {
	Status string `json:"status"`
}
