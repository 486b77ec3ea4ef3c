package dto

import "time"

// HistoryFilter filtros de GET /api/history.
type HistoryFilter struct {
	EquipmentID  string
	TechnicianID string // solo ADMIN
	CompanyID    string // solo ADMIN
	From         string
	To           string
	PageRequest
}

// HistoryResponse entrada del historial.
type HistoryResponse struct {
	ID                string            `json:"id"`
	EquipmentID       string            `json:"equipment_id"`
	MaintenanceID     string            `json:"maintenance_id,omitempty"`
	TechnicianID      string            `json:"technician_id"`
	TechnicianName    string            `json:"technician_name,omitempty"`
	Date              time.Time         `json:"date"`
	Observations      string            `json:"observations"`
	Equipment         *EquipmentSummary `json:"equipment,omitempty"`
	CompanyName       string            `json:"company_name,omitempty"`
	MaintenanceKind   string            `json:"maintenance_kind,omitempty"`
	MaintenanceStatus string            `json:"maintenance_status,omitempty"`
}

// HistoryListResponse lista paginada del historial.
type HistoryListResponse struct {
	Items []HistoryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
