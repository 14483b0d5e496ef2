package converter

import (
	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/integrity"
)

func ReportToResponse(report *integrity.Report) *dto.ReportResponse {
	counts := make(map[integrity.Kind]int)
	for kind, findings := range report.ByKind() {
		counts[kind] = len(findings)
	}

	findings := report.Findings()
	if findings == nil {
		findings = []integrity.Finding{}
	}

	return &dto.ReportResponse{
		OK:       report.OK(),
		Counts:   counts,
		Findings: findings,
		Tables:   report.Tables(),
	}
}
