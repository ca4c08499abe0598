package models

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// BalanceStats is the admin dashboard summary: entity counts plus the sum of
// every recorded payment.
type BalanceStats struct {
	Trainers     int       `json:"trainers"`
	Members      int       `json:"members"`
	Classes      int       `json:"classes"`
	Payments     int       `json:"payments"`
	Subscribers  int       `json:"subscribers"`
	TotalBalance float64   `json:"total_balance"`
	History      []Payment `json:"history"`
}
