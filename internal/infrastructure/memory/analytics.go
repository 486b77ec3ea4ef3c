package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard sobre el almacén en memoria.
type AnalyticsRepo struct {
	s *Store
}

// EquipmentByStatus equipos visibles agrupados por estado.
func (r *AnalyticsRepo) EquipmentByStatus(_ context.Context, scope visibility.Filter) (map[entity.EquipmentStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reachable := r.s.reachableLocked(scope)
	out := make(map[entity.EquipmentStatus]int)
	for _, e := range r.s.equipment {
		if scope.MatchEquipment(e, reachable) {
			out[e.Status]++
		}
	}
	return out, nil
}

// MaintenanceBuckets tareas visibles por (estado, tipo).
func (r *AnalyticsRepo) MaintenanceBuckets(_ context.Context, scope visibility.Filter) ([]repository.MaintenanceBucket, error) {
	type key struct {
		status entity.MaintenanceStatus
		kind   entity.MaintenanceKind
	}
	counts := make(map[key]int)
	r.eachTask(scope, func(m *entity.Maintenance) {
		counts[key{m.Status, m.Kind}]++
	})
	out := make([]repository.MaintenanceBucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, repository.MaintenanceBucket{Status: k.status, Kind: k.kind, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

// CompletedBetween tareas COMPLETADO con fecha realizada en [from, to).
func (r *AnalyticsRepo) CompletedBetween(_ context.Context, scope visibility.Filter, from, to time.Time) (int, error) {
	n := 0
	r.eachTask(scope, func(m *entity.Maintenance) {
		if m.Status != entity.MaintenanceCompleted || m.CompletedDate == nil {
			return
		}
		d := *m.CompletedDate
		if d.Before(from) {
			return
		}
		if !to.IsZero() && !d.Before(to) {
			return
		}
		n++
	})
	return n, nil
}

// PendingCreatedBefore tareas pendientes creadas antes de before.
func (r *AnalyticsRepo) PendingCreatedBefore(_ context.Context, scope visibility.Filter, before time.Time) (int, error) {
	n := 0
	r.eachTask(scope, func(m *entity.Maintenance) {
		if !m.Status.Terminal() && m.CreatedAt.Before(before) {
			n++
		}
	})
	return n, nil
}

// MonthlyByKind tareas programadas desde since agrupadas por mes (en loc) y tipo.
func (r *AnalyticsRepo) MonthlyByKind(_ context.Context, scope visibility.Filter, since time.Time, loc *time.Location) ([]repository.MonthlyKindCount, error) {
	if loc == nil {
		loc = time.UTC
	}
	type key struct {
		month string
		kind  entity.MaintenanceKind
	}
	counts := make(map[key]int)
	r.eachTask(scope, func(m *entity.Maintenance) {
		if m.ScheduledDate.IsZero() || m.ScheduledDate.Before(since) {
			return
		}
		counts[key{m.ScheduledDate.In(loc).Format("2006-01"), m.Kind}]++
	})
	out := make([]repository.MonthlyKindCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, repository.MonthlyKindCount{Month: k.month, Kind: k.kind, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

func (r *AnalyticsRepo) eachTask(scope visibility.Filter, fn func(*entity.Maintenance)) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.maintenances {
		if scope.MatchTask(m, r.s.equipment[m.EquipmentID]) {
			fn(m)
		}
	}
}
