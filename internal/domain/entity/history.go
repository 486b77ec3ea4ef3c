package entity

import "time"

// HistoryEntry registro inmutable de un evento sobre un equipo
// (programación de mantenimiento, cambio de estado, observación del técnico).
type HistoryEntry struct {
	ID            string
	EquipmentID   string
	MaintenanceID string // vacío si el evento no está ligado a una tarea
	TechnicianID  string
	Date          time.Time
	Observations  string
	CreatedAt     time.Time
}
