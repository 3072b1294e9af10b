package dto

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RevenueSliceResponse struct {
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

type OrgDashboardStats struct {
	TotalProperties  int64                 `json:"total_properties"`
	TotalWorkOrders  int64                 `json:"total_work_orders"`
	OpenWorkOrders   int64                 `json:"open_work_orders"`
	UrgentWorkOrders int64                 `json:"urgent_work_orders"`
	WorkOrders       []StatusCountResponse `json:"work_orders_by_status"`
	Revenue          []RevenueSliceResponse `json:"revenue_by_status"`
}

// PlatformRevenueRow is one tenant's revenue in a cross-tenant report.
// Only reachable through the audited bypass path.
type PlatformRevenueRow struct {
	OrgId string  `json:"org_id"`
	Total float64 `json:"total"`
}
