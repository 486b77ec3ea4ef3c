package dto

import "time"

// CreateEquipmentRequest entrada para registrar un equipo.
type CreateEquipmentRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Type      string `json:"type" validate:"required,max=50"`
	Brand     string `json:"brand" validate:"required,max=50"`
	Model     string `json:"model" validate:"max=50"`
	Serial    string `json:"serial" validate:"required,max=100"`
	Status    string `json:"status" validate:"required,oneof=ACTIVO INACTIVO EN_MANTENIMIENTO DADO_DE_BAJA"`
	Location  string `json:"location" validate:"max=200"`
}

// UpdateEquipmentRequest entrada para actualizar un equipo (campos opcionales).
type UpdateEquipmentRequest struct {
	CompanyID *string `json:"company_id"`
	Type      *string `json:"type" validate:"omitempty,max=50"`
	Brand     *string `json:"brand" validate:"omitempty,max=50"`
	Model     *string `json:"model" validate:"omitempty,max=50"`
	Serial    *string `json:"serial" validate:"omitempty,max=100"`
	Status    *string `json:"status" validate:"omitempty,oneof=ACTIVO INACTIVO EN_MANTENIMIENTO DADO_DE_BAJA"`
	Location  *string `json:"location" validate:"omitempty,max=200"`
}

// EquipmentFilter filtros de GET /api/equipment.
type EquipmentFilter struct {
	CompanyID string // solo ADMIN
	Status    string
	Search    string
	PageRequest
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Type        string    `json:"type"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Serial      string    `json:"serial"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EquipmentSummary datos del equipo embebidos en tareas e historial.
type EquipmentSummary struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Type      string `json:"type"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Serial    string `json:"serial"`
	Status    string `json:"status"`
	Location  string `json:"location"`
}

// EquipmentListResponse lista paginada de equipos.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
