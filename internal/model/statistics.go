package model

import "github.com/shopspring/decimal"

// DashboardStats aggregates the admin dashboard counters
type DashboardStats struct {
	TotalUsers      int64           `json:"totalUsers"`
	TotalComplaints int64           `json:"totalComplaints"`
	OpenComplaints  int64           `json:"openComplaints"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`    // money collected so far
	PendingPayments decimal.Decimal `json:"pendingPayments"` // outstanding balances
}
