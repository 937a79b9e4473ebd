package models

// Pagination describes list slicing metadata returned to API consumers.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}
