package dto

type PickupPointResponse struct {
	PickupID     string  `json:"pickup_id"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	PriorityFlag string  `json:"priority_flag"`
	VolumeM3     float64 `json:"volume_m3"`
	Description  string  `json:"description"`
}

type ListPickupPointsResponse struct {
	PickupPoints []PickupPointResponse `json:"pickup_points"`
}
