package dto

import "time"

// CreateMaintenanceRequest entrada para programar un mantenimiento.
// Las fechas aceptan RFC3339 o YYYY-MM-DD (medianoche en la zona horaria del servicio).
type CreateMaintenanceRequest struct {
	EquipmentID   string  `json:"equipment_id" validate:"required"`
	TechnicianID  string  `json:"technician_id" validate:"required"`
	Kind          string  `json:"kind" validate:"required,oneof=PREVENTIVO CORRECTIVO"`
	Status        string  `json:"status" validate:"omitempty,oneof=PROGRAMADO EN_PROCESO COMPLETADO CANCELADO"`
	ScheduledDate string  `json:"scheduled_date" validate:"required"`
	CompletedDate *string `json:"completed_date"`
	Description   string  `json:"description" validate:"required"`
	Observations  string  `json:"observations"`
	ReportURL     string  `json:"report_url" validate:"omitempty,url"`
}

// UpdateMaintenanceRequest entrada para actualizar o cambiar de estado (campos opcionales).
type UpdateMaintenanceRequest struct {
	Kind          *string `json:"kind" validate:"omitempty,oneof=PREVENTIVO CORRECTIVO"`
	Status        *string `json:"status" validate:"omitempty,oneof=PROGRAMADO EN_PROCESO COMPLETADO CANCELADO"`
	ScheduledDate *string `json:"scheduled_date"`
	CompletedDate *string `json:"completed_date"`
	Description   *string `json:"description"`
	Observations  *string `json:"observations"`
	ReportURL     *string `json:"report_url"`
}

// MaintenanceFilter filtros de GET /api/maintenances.
type MaintenanceFilter struct {
	ID           string
	Status       string
	Kind         string
	TechnicianID string
	EquipmentID  string
	CompanyID    string // solo ADMIN
	Search       string
	PageRequest
}

// TechnicianSummary técnico asignado.
type TechnicianSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MaintenanceResponse salida de una tarea. Alerta es null cuando la tarea no
// está atrasada ni próxima.
type MaintenanceResponse struct {
	ID            string             `json:"id"`
	EquipmentID   string             `json:"equipment_id"`
	TechnicianID  string             `json:"technician_id"`
	Kind          string             `json:"kind"`
	Status        string             `json:"status"`
	ScheduledDate time.Time          `json:"scheduled_date"`
	CompletedDate *time.Time         `json:"completed_date"`
	Description   string             `json:"description"`
	Observations  string             `json:"observations"`
	ReportURL     string             `json:"report_url"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Equipment     *EquipmentSummary  `json:"equipment,omitempty"`
	CompanyName   string             `json:"company_name,omitempty"`
	Technician    *TechnicianSummary `json:"technician,omitempty"`
	Alerta        *RowAlertDTO       `json:"alerta"`
	History       []HistoryResponse  `json:"history,omitempty"`
}

// MaintenanceListResponse lista paginada de tareas.
type MaintenanceListResponse struct {
	Items []MaintenanceResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
