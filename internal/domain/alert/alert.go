// Package alert clasifica tareas de mantenimiento y equipos en alertas.
//
// Las alertas son un modelo transitorio: se calculan en cada lectura a partir de
// (now, registro) y nunca se persisten. Esta es la única implementación de la
// regla; el listado de alertas, el dashboard y el resaltado de filas del listado
// de mantenimientos la comparten.
package alert

import (
	"errors"
	"sort"
	"time"
)

// Category tipo de alerta.
type Category string

const (
	CategoryOverdue  Category = "ATRASADO"
	CategoryUpcoming Category = "PROXIMO"
	CategoryCritical Category = "CRITICO"
)

// Priority prioridad de una alerta.
type Priority string

const (
	PriorityHigh   Priority = "ALTA"
	PriorityMedium Priority = "MEDIA"
	PriorityLow    Priority = "BAJA"
)

// Rank orden de la prioridad: ALTA(0) < MEDIA(1) < BAJA(2). Desconocidas al final.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

const (
	// UpcomingWindowDays días hacia adelante en los que una tarea PROGRAMADO es PROXIMO.
	UpcomingWindowDays = 3
	// UrgentWithinDays una tarea PROXIMO con daysUntilDue <= este valor tiene prioridad ALTA.
	UrgentWithinDays = 1
)

// ErrMissingScheduledDate tarea activa sin fecha programada: violación de integridad
// del almacén. Se reporta por registro, no aborta el lote.
var ErrMissingScheduledDate = errors.New("alert: tarea activa sin fecha programada")

// Alert alerta derivada de una tarea (ATRASADO, PROXIMO) o de un equipo (CRITICO).
type Alert struct {
	ID          string
	Category    Category
	Priority    Priority
	Title       string
	Message     string
	TaskID      string // origen para ATRASADO y PROXIMO
	EquipmentID string // equipo de la tarea, u origen para CRITICO
	Date        time.Time
	Days        int // días de atraso (ATRASADO) o días restantes (PROXIMO)
}

// Sort ordena por prioridad y luego por fecha ascendente. Estable: en empates
// exactos conserva el orden de entrada.
func Sort(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Priority.Rank(), alerts[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].Date.Before(alerts[j].Date)
	})
}

// Counts tallies por categoría.
type Counts struct {
	Overdue  int
	Upcoming int
	Critical int
	Total    int
}

// Count cuenta las alertas por categoría.
func Count(alerts []Alert) Counts {
	var c Counts
	for _, a := range alerts {
		switch a.Category {
		case CategoryOverdue:
			c.Overdue++
		case CategoryUpcoming:
			c.Upcoming++
		case CategoryCritical:
			c.Critical++
		}
	}
	c.Total = len(alerts)
	return c
}
