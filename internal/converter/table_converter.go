package converter

import (
	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/seed"
)

// TableToResponse describes a seeded table with its catalog metadata
func TableToResponse(t *seed.Table) dto.TableResponse {
	return dto.TableResponse{
		Name:       t.Spec.Name,
		Access:     t.Spec.Access,
		Owner:      t.Spec.Owner,
		Serial:     t.Spec.Serial,
		Declared:   t.Declared,
		Rows:       len(t.Rows),
		References: t.Spec.References,
	}
}

// TablesToResponse lists the dataset tables in import order
func TablesToResponse(ds *seed.Dataset) *dto.TableListResponse {
	tables := make([]dto.TableResponse, 0, len(ds.Tables()))
	for _, t := range ds.Tables() {
		tables = append(tables, TableToResponse(t))
	}
	return &dto.TableListResponse{
		Tables: tables,
		Total:  len(tables),
	}
}
