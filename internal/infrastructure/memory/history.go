package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial en memoria (solo inserción).
type HistoryRepo struct {
	s *Store
}

// Create agrega una entrada.
func (r *HistoryRepo) Create(_ context.Context, h *entity.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[h.EquipmentID]; !ok {
		return fmt.Errorf("equipo %s: %w", h.EquipmentID, domain.ErrNotFound)
	}
	r.s.history[h.ID] = cloneHistory(h)
	return nil
}

func (r *HistoryRepo) filter(scope visibility.Filter, q repository.HistoryQuery) []repository.HistoryDetail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.HistoryDetail, 0)
	for _, h := range r.s.history {
		eq := r.s.equipment[h.EquipmentID]
		if !scope.MatchHistory(h, eq) {
			continue
		}
		if q.EquipmentID != "" && h.EquipmentID != q.EquipmentID {
			continue
		}
		if q.MaintenanceID != "" && h.MaintenanceID != q.MaintenanceID {
			continue
		}
		if q.TechnicianID != "" && h.TechnicianID != q.TechnicianID {
			continue
		}
		if q.CompanyID != "" && (eq == nil || eq.CompanyID != q.CompanyID) {
			continue
		}
		if !q.From.IsZero() && h.Date.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && h.Date.After(q.To) {
			continue
		}

		d := repository.HistoryDetail{Entry: cloneHistory(h), Equipment: cloneEquipment(eq)}
		if eq != nil {
			if c := r.s.companies[eq.CompanyID]; c != nil {
				d.CompanyName = c.Name
			}
		}
		if u := r.s.users[h.TechnicianID]; u != nil {
			d.TechnicianName = u.Name
		}
		if m := r.s.maintenances[h.MaintenanceID]; m != nil {
			d.MaintenanceKind = m.Kind
			d.MaintenanceStatus = m.Status
		}
		out = append(out, d)
	}
	return out
}

// List entradas visibles, más recientes primero.
func (r *HistoryRepo) List(_ context.Context, scope visibility.Filter, q repository.HistoryQuery) ([]repository.HistoryDetail, error) {
	list := r.filter(scope, q)
	newestFirst(list,
		func(d repository.HistoryDetail) time.Time { return d.Entry.Date },
		func(d repository.HistoryDetail) string { return d.Entry.ID })
	return page(list, q.Limit, q.Offset), nil
}

// Count entradas visibles que cumplen los filtros.
func (r *HistoryRepo) Count(_ context.Context, scope visibility.Filter, q repository.HistoryQuery) (int, error) {
	return len(r.filter(scope, q)), nil
}
