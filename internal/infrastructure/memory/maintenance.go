package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo tareas de mantenimiento en memoria.
type MaintenanceRepo struct {
	s *Store
}

// Create persiste una tarea sobre un equipo y técnico existentes.
func (r *MaintenanceRepo) Create(_ context.Context, m *entity.Maintenance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkRefsLocked(m); err != nil {
		return err
	}
	r.s.maintenances[m.ID] = cloneMaintenance(m)
	return nil
}

// GetByID obtiene una tarea; (nil, nil) si no existe.
func (r *MaintenanceRepo) GetByID(_ context.Context, id string) (*entity.Maintenance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneMaintenance(r.s.maintenances[id]), nil
}

// GetDetail obtiene una tarea con equipo, empresa y técnico.
func (r *MaintenanceRepo) GetDetail(_ context.Context, id string) (*repository.MaintenanceDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m := r.s.maintenances[id]
	if m == nil {
		return nil, nil
	}
	d := r.s.maintenanceDetailLocked(m)
	return &d, nil
}

// Update reemplaza una tarea existente.
func (r *MaintenanceRepo) Update(_ context.Context, m *entity.Maintenance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.maintenances[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.s.checkRefsLocked(m); err != nil {
		return err
	}
	r.s.maintenances[m.ID] = cloneMaintenance(m)
	return nil
}

// Delete elimina una tarea; el historial que la referenciaba queda sin tarea.
func (r *MaintenanceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.maintenances[id]; !ok {
		return domain.ErrNotFound
	}
	for _, h := range r.s.history {
		if h.MaintenanceID == id {
			h.MaintenanceID = ""
		}
	}
	delete(r.s.maintenances, id)
	return nil
}

func (r *MaintenanceRepo) filter(scope visibility.Filter, q repository.MaintenanceQuery) []repository.MaintenanceDetail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.MaintenanceDetail, 0)
	for _, m := range r.s.maintenances {
		eq := r.s.equipment[m.EquipmentID]
		if !scope.MatchTask(m, eq) {
			continue
		}
		if q.ID != "" && m.ID != q.ID {
			continue
		}
		if q.EquipmentID != "" && m.EquipmentID != q.EquipmentID {
			continue
		}
		if q.TechnicianID != "" && m.TechnicianID != q.TechnicianID {
			continue
		}
		if q.CompanyID != "" && (eq == nil || eq.CompanyID != q.CompanyID) {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, m.Status) {
			continue
		}
		if q.Kind != "" && m.Kind != q.Kind {
			continue
		}
		if !q.ScheduledBefore.IsZero() && !m.ScheduledDate.Before(q.ScheduledBefore) {
			continue
		}
		if q.Search != "" {
			fields := []string{m.Description}
			if eq != nil {
				fields = append(fields, eq.Type, eq.Brand, eq.Serial, eq.Model)
			}
			if !matchesAllTerms(q.Search, fields...) {
				continue
			}
		}
		out = append(out, r.s.maintenanceDetailLocked(m))
	}
	return out
}

// List tareas visibles ordenadas por fecha programada (descendente salvo OrderAsc).
func (r *MaintenanceRepo) List(_ context.Context, scope visibility.Filter, q repository.MaintenanceQuery) ([]repository.MaintenanceDetail, error) {
	list := r.filter(scope, q)
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Maintenance, list[j].Maintenance
		if !a.ScheduledDate.Equal(b.ScheduledDate) {
			if q.OrderAsc {
				return a.ScheduledDate.Before(b.ScheduledDate)
			}
			return a.ScheduledDate.After(b.ScheduledDate)
		}
		return a.ID < b.ID
	})
	return page(list, q.Limit, q.Offset), nil
}

// Count tareas visibles que cumplen los filtros.
func (r *MaintenanceRepo) Count(_ context.Context, scope visibility.Filter, q repository.MaintenanceQuery) (int, error) {
	return len(r.filter(scope, q)), nil
}

func (s *Store) checkRefsLocked(m *entity.Maintenance) error {
	if _, ok := s.equipment[m.EquipmentID]; !ok {
		return fmt.Errorf("equipo %s: %w", m.EquipmentID, domain.ErrNotFound)
	}
	if _, ok := s.users[m.TechnicianID]; !ok {
		return fmt.Errorf("técnico %s: %w", m.TechnicianID, domain.ErrInvalidTechnician)
	}
	return nil
}

func (s *Store) maintenanceDetailLocked(m *entity.Maintenance) repository.MaintenanceDetail {
	d := repository.MaintenanceDetail{Maintenance: cloneMaintenance(m)}
	if eq := s.equipment[m.EquipmentID]; eq != nil {
		d.Equipment = cloneEquipment(eq)
		if c := s.companies[eq.CompanyID]; c != nil {
			d.CompanyName = c.Name
		}
	}
	if u := s.users[m.TechnicianID]; u != nil {
		d.TechnicianName = u.Name
		d.TechnicianEmail = u.Email
	}
	return d
}

// matchesAllTerms cada término de search debe aparecer en alguno de los campos.
func matchesAllTerms(search string, fields ...string) bool {
	for _, term := range strings.Fields(search) {
		if !matchesAnyTerm(term, fields...) {
			return false
		}
	}
	return true
}

func matchesAnyTerm(term string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, term) {
			return true
		}
	}
	return false
}
