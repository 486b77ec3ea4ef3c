package entity

import "time"

// MaintenanceKind tipo de mantenimiento.
type MaintenanceKind string

const (
	MaintenancePreventive MaintenanceKind = "PREVENTIVO"
	MaintenanceCorrective MaintenanceKind = "CORRECTIVO"
)

// Valid informa si el tipo es reconocido.
func (k MaintenanceKind) Valid() bool {
	return k == MaintenancePreventive || k == MaintenanceCorrective
}

// MaintenanceStatus estado de una tarea de mantenimiento.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "PROGRAMADO"
	MaintenanceInProgress MaintenanceStatus = "EN_PROCESO"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETADO"
	MaintenanceCancelled  MaintenanceStatus = "CANCELADO"
)

// Valid informa si el estado es reconocido.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	default:
		return false
	}
}

// Terminal indica que la tarea ya no puede generar alertas (completada o cancelada).
func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

// PendingStatuses estados de una tarea aún abierta.
var PendingStatuses = []MaintenanceStatus{MaintenanceScheduled, MaintenanceInProgress}

// Maintenance es una tarea de mantenimiento sobre un equipo, asignada a un técnico.
type Maintenance struct {
	ID            string
	EquipmentID   string
	TechnicianID  string
	Kind          MaintenanceKind
	Status        MaintenanceStatus
	ScheduledDate time.Time
	CompletedDate *time.Time // nil mientras la tarea no se haya realizado
	Description   string
	Observations  string
	ReportURL     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
