package domain

// ServiceDemand is one row of the per-service booking aggregate.
type ServiceDemand struct {
	ServiceID      int64  `json:"service_id"`
	ServiceName    string `json:"service_name"`
	Category       string `json:"category"`
	BookingCount   int64  `json:"booking_count"`
	CompletedCount int64  `json:"completed_count"`
}
