package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/MantenPro-api/internal/domain/alert"
)

func TestSort_PrioridadYFecha(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC) }
	alerts := []alert.Alert{
		{ID: "m", Priority: alert.PriorityMedium, Date: d(1)},
		{ID: "a2", Priority: alert.PriorityHigh, Date: d(9)},
		{ID: "a1", Priority: alert.PriorityHigh, Date: d(5)},
		{ID: "b", Priority: alert.PriorityLow, Date: d(1)},
	}
	alert.Sort(alerts)

	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"a1", "a2", "m", "b"}, ids)
}

func TestSort_EstableEnEmpates(t *testing.T) {
	same := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	alerts := []alert.Alert{
		{ID: "x", Priority: alert.PriorityHigh, Date: same},
		{ID: "y", Priority: alert.PriorityHigh, Date: same},
		{ID: "z", Priority: alert.PriorityHigh, Date: same},
	}
	alert.Sort(alerts)
	assert.Equal(t, "x", alerts[0].ID)
	assert.Equal(t, "y", alerts[1].ID)
	assert.Equal(t, "z", alerts[2].ID)
}

func TestSort_Vacio(t *testing.T) {
	assert.NotPanics(t, func() { alert.Sort(nil) })
}

func TestCount(t *testing.T) {
	c := alert.Count([]alert.Alert{
		{Category: alert.CategoryOverdue},
		{Category: alert.CategoryOverdue},
		{Category: alert.CategoryUpcoming},
		{Category: alert.CategoryCritical},
	})
	assert.Equal(t, alert.Counts{Overdue: 2, Upcoming: 1, Critical: 1, Total: 4}, c)
	assert.Equal(t, alert.Counts{}, alert.Count(nil))
}

func TestPriorityRank_DesconocidaAlFinal(t *testing.T) {
	assert.Less(t, alert.PriorityLow.Rank(), alert.Priority("URGENTE").Rank())
}
