package dto

import "cosmetic-platform-dataset/internal/domain/catalog"

type TableResponse struct {
	Name       string              `json:"name"`
	Access     catalog.AccessClass `json:"access"`
	Owner      string              `json:"owner,omitempty"`
	Serial     bool                `json:"serial"`
	Declared   int                 `json:"declared_rows"`
	Rows       int                 `json:"rows"`
	References []catalog.Reference `json:"references,omitempty"`
}

type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
	Total  int             `json:"total"`
}
