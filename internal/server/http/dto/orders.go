package dto

import "github.com/polkiloo/iowasensors/internal/domain/model"

// CompleteOrderRequest carries the tracking number entered by the admin.
type CompleteOrderRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// BoardResponse is a snapshot of the admin order board.
type BoardResponse struct {
	Buckets     map[model.BucketName][]model.Order `json:"buckets"`
	BucketOrder []model.BucketName                 `json:"bucket_order"`
	Loading     bool                               `json:"loading"`
	HasMore     bool                               `json:"has_more"`
}

// NewBoardResponse renders empty buckets as empty arrays.
func NewBoardResponse(buckets model.Buckets, loading, hasMore bool) BoardResponse {
	out := make(map[model.BucketName][]model.Order, len(model.BucketNames))
	for _, name := range model.BucketNames {
		orders := buckets[name]
		if orders == nil {
			orders = []model.Order{}
		}
		out[name] = orders
	}
	return BoardResponse{
		Buckets:     out,
		BucketOrder: model.BucketNames,
		Loading:     loading,
		HasMore:     hasMore,
	}
}
