package dto

// WorkshopCostReportRowDTO is one row of the per-workshop cost report.
type WorkshopCostReportRowDTO struct {
	WorkshopID   uint64  `json:"workshop_id"`
	WorkshopName string  `json:"workshop_name"`
	Currency     string  `json:"currency"`
	RecordCount  uint64  `json:"record_count"`
	TotalCost    float64 `json:"total_cost"`
}
