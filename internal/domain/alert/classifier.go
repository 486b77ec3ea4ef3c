package alert

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
)

// TaskStatus proyección de la regla para resaltar filas: categoría (vacía si no
// hay alerta) y días. Days es la magnitud del atraso para ATRASADO y los días
// restantes en cualquier otro caso.
type TaskStatus struct {
	Category Category
	Days     int
}

// DaysUntil diferencia en días calendario entre hoy y la fecha programada,
// ambos en la zona horaria de now y con la hora del día en cero.
func DaysUntil(now, scheduled time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := scheduled.In(now.Location()).Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	due := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Status aplica la regla de atraso/proximidad a una tarea.
func Status(now time.Time, t *entity.Maintenance) (TaskStatus, error) {
	if t == nil || t.Status.Terminal() {
		return TaskStatus{}, nil
	}
	if t.ScheduledDate.IsZero() {
		return TaskStatus{}, ErrMissingScheduledDate
	}

	days := DaysUntil(now, t.ScheduledDate)
	switch {
	case days < 0 && (t.Status == entity.MaintenanceScheduled || t.Status == entity.MaintenanceInProgress):
		return TaskStatus{Category: CategoryOverdue, Days: -days}, nil
	case days >= 0 && days <= UpcomingWindowDays && t.Status == entity.MaintenanceScheduled:
		return TaskStatus{Category: CategoryUpcoming, Days: days}, nil
	default:
		return TaskStatus{Days: days}, nil
	}
}

// ClassifyTask deriva la alerta de una tarea. eq es el equipo de la tarea (para el mensaje).
// Devuelve ok=false si la tarea no genera alerta.
func ClassifyTask(now time.Time, t *entity.Maintenance, eq *entity.Equipment) (Alert, bool, error) {
	st, err := Status(now, t)
	if err != nil {
		return Alert{}, false, fmt.Errorf("mantenimiento %s: %w", t.ID, err)
	}
	if st.Category == "" {
		return Alert{}, false, nil
	}

	kind := cases.Lower(language.Spanish).String(string(t.Kind))
	equipmentType := t.EquipmentID
	if eq != nil && eq.Type != "" {
		equipmentType = eq.Type
	}

	a := Alert{
		Category:    st.Category,
		TaskID:      t.ID,
		EquipmentID: t.EquipmentID,
		Date:        t.ScheduledDate,
		Days:        st.Days,
	}
	switch st.Category {
	case CategoryOverdue:
		a.ID = "atrasado-" + t.ID
		a.Priority = PriorityHigh
		a.Title = "Mantenimiento atrasado"
		a.Message = fmt.Sprintf("El mantenimiento %s del equipo %s está atrasado por %d día(s)", kind, equipmentType, st.Days)
	case CategoryUpcoming:
		a.ID = "proximo-" + t.ID
		a.Priority = PriorityMedium
		if st.Days <= UrgentWithinDays {
			a.Priority = PriorityHigh
		}
		a.Title = "Mantenimiento próximo"
		a.Message = fmt.Sprintf("El mantenimiento %s del equipo %s está programado %s", kind, equipmentType, dueLabel(st.Days))
	}
	return a, true, nil
}

// ClassifyEquipment deriva la alerta CRITICO de un equipo en mantenimiento o dado de baja.
// La fecha de la alerta es now.
func ClassifyEquipment(now time.Time, eq *entity.Equipment) (Alert, bool) {
	if eq == nil {
		return Alert{}, false
	}
	var p Priority
	switch eq.Status {
	case entity.EquipmentRetired:
		p = PriorityHigh
	case entity.EquipmentInMaintenance:
		p = PriorityMedium
	default:
		return Alert{}, false
	}
	return Alert{
		ID:          "critico-" + eq.ID,
		Category:    CategoryCritical,
		Priority:    p,
		Title:       "Equipo crítico",
		Message:     fmt.Sprintf("El equipo %s (%s) está en estado: %s", eq.Type, eq.Brand, eq.Status.Label()),
		EquipmentID: eq.ID,
		Date:        now,
	}, true
}

func dueLabel(days int) string {
	if days == 0 {
		return "hoy"
	}
	return fmt.Sprintf("en %d día(s)", days)
}
