package dto

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Todos los conteos respetan la visibilidad del actor.
type DashboardStatsDTO struct {
	TotalEquipment       int            `json:"total_equipment"`
	EquipmentByStatus    map[string]int `json:"equipment_by_status"`
	TotalMaintenances    int            `json:"total_maintenances"`
	MaintenancesByStatus map[string]int `json:"maintenances_by_status"`
	MaintenancesByKind   map[string]int `json:"maintenances_by_kind"`

	// Completadas este mes y variación porcentual frente al mes anterior.
	CompletedThisMonth int `json:"completed_this_month"`
	CompletedChange    int `json:"completed_change"`

	CriticalEquipment int `json:"critical_equipment"` // EN_MANTENIMIENTO + DADO_DE_BAJA

	// Pendientes (PROGRAMADO + EN_PROCESO) y variación frente a las creadas antes de este mes.
	Pending       int `json:"pending"`
	PendingChange int `json:"pending_change"`

	Upcoming []MaintenanceResponse `json:"upcoming"` // próximas 10 por fecha programada
	Monthly  []MonthlyKindDTO      `json:"monthly"`  // últimos 6 meses
}

// MonthlyKindDTO punto de la gráfica mensual.
type MonthlyKindDTO struct {
	Month string `json:"month"` // YYYY-MM
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}
