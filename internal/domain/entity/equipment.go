package entity

import "time"

// EquipmentStatus estado operativo de un equipo.
type EquipmentStatus string

const (
	EquipmentActive        EquipmentStatus = "ACTIVO"
	EquipmentInactive      EquipmentStatus = "INACTIVO"
	EquipmentInMaintenance EquipmentStatus = "EN_MANTENIMIENTO"
	EquipmentRetired       EquipmentStatus = "DADO_DE_BAJA"
)

// Valid informa si el estado es uno de los cuatro reconocidos.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentActive, EquipmentInactive, EquipmentInMaintenance, EquipmentRetired:
		return true
	default:
		return false
	}
}

// Label etiqueta legible para mostrar en UI y mensajes.
func (s EquipmentStatus) Label() string {
	switch s {
	case EquipmentActive:
		return "Activo"
	case EquipmentInactive:
		return "Inactivo"
	case EquipmentInMaintenance:
		return "En Mantenimiento"
	case EquipmentRetired:
		return "Dado de Baja"
	default:
		return string(s)
	}
}

// Equipment representa un equipo registrado por una empresa. Pertenece a exactamente una Company.
type Equipment struct {
	ID        string
	CompanyID string
	Type      string // ej: "Compresor", "Aire acondicionado"
	Brand     string
	Model     string
	Serial    string
	Status    EquipmentStatus
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
