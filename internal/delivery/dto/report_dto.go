package dto

import "cosmetic-platform-dataset/internal/integrity"

type ReportResponse struct {
	OK       bool                     `json:"ok"`
	Counts   map[integrity.Kind]int   `json:"counts"`
	Findings []integrity.Finding      `json:"findings"`
	Tables   []integrity.TableSummary `json:"tables"`
}
