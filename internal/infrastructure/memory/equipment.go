package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo equipos en memoria. Serial único.
type EquipmentRepo struct {
	s *Store
}

// Create persiste un equipo de una empresa existente.
func (r *EquipmentRepo) Create(_ context.Context, eq *entity.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[eq.CompanyID]; !ok {
		return fmt.Errorf("empresa %s: %w", eq.CompanyID, domain.ErrNotFound)
	}
	for _, e := range r.s.equipment {
		if e.Serial == eq.Serial {
			return domain.ErrSerialAlreadyExists
		}
	}
	r.s.equipment[eq.ID] = cloneEquipment(eq)
	return nil
}

// GetByID obtiene un equipo; (nil, nil) si no existe.
func (r *EquipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneEquipment(r.s.equipment[id]), nil
}

// GetBySerial obtiene un equipo por serial.
func (r *EquipmentRepo) GetBySerial(_ context.Context, serial string) (*entity.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.equipment {
		if e.Serial == serial {
			return cloneEquipment(e), nil
		}
	}
	return nil, nil
}

// Update reemplaza un equipo existente.
func (r *EquipmentRepo) Update(_ context.Context, eq *entity.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[eq.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.companies[eq.CompanyID]; !ok {
		return fmt.Errorf("empresa %s: %w", eq.CompanyID, domain.ErrNotFound)
	}
	for _, e := range r.s.equipment {
		if e.ID != eq.ID && e.Serial == eq.Serial {
			return domain.ErrSerialAlreadyExists
		}
	}
	r.s.equipment[eq.ID] = cloneEquipment(eq)
	return nil
}

// Delete elimina un equipo sin tareas ni historial.
func (r *EquipmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.maintenances {
		if m.EquipmentID == id {
			return domain.ErrInUse
		}
	}
	for _, h := range r.s.history {
		if h.EquipmentID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.equipment, id)
	return nil
}

func (r *EquipmentRepo) filter(scope visibility.Filter, q repository.EquipmentQuery) []repository.EquipmentDetail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reachable := r.s.reachableLocked(scope)
	out := make([]repository.EquipmentDetail, 0)
	for _, e := range r.s.equipment {
		if !scope.MatchEquipment(e, reachable) {
			continue
		}
		if q.ID != "" && e.ID != q.ID {
			continue
		}
		if q.CompanyID != "" && e.CompanyID != q.CompanyID {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, e.Status) {
			continue
		}
		if q.Search != "" && !matchesAllTerms(q.Search, e.Type, e.Brand, e.Model, e.Serial) {
			continue
		}
		d := repository.EquipmentDetail{Equipment: cloneEquipment(e)}
		if c := r.s.companies[e.CompanyID]; c != nil {
			d.CompanyName = c.Name
		}
		out = append(out, d)
	}
	return out
}

// List equipos visibles, más recientes primero.
func (r *EquipmentRepo) List(_ context.Context, scope visibility.Filter, q repository.EquipmentQuery) ([]repository.EquipmentDetail, error) {
	list := r.filter(scope, q)
	newestFirst(list,
		func(d repository.EquipmentDetail) time.Time { return d.Equipment.CreatedAt },
		func(d repository.EquipmentDetail) string { return d.Equipment.ID })
	return page(list, q.Limit, q.Offset), nil
}

// Count equipos visibles que cumplen los filtros.
func (r *EquipmentRepo) Count(_ context.Context, scope visibility.Filter, q repository.EquipmentQuery) (int, error) {
	return len(r.filter(scope, q)), nil
}

// reachableLocked equipos alcanzables por las tareas del técnico. Requiere mu tomado.
func (s *Store) reachableLocked(scope visibility.Filter) map[string]struct{} {
	if scope.Mode != visibility.ModeTechnician {
		return nil
	}
	tasks := make([]*entity.Maintenance, 0, len(s.maintenances))
	for _, m := range s.maintenances {
		tasks = append(tasks, m)
	}
	return visibility.ReachableEquipment(tasks, scope.TechnicianID)
}
