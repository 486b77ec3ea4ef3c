// Package memory implementa los puertos de persistencia en memoria.
// Se usa en modo STORAGE_DRIVER=memory (desarrollo, demos) y en los tests de
// casos de uso y handlers. Los registros se copian al entrar y al salir, de modo
// que los llamadores nunca comparten punteros con el almacén.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

// Store agrupa las tablas en memoria. Cada repositorio es una vista sobre el mismo Store.
type Store struct {
	mu sync.RWMutex
	// txMu serializa las transacciones (una a la vez).
	txMu sync.Mutex

	companies    map[string]*entity.Company
	users        map[string]*entity.User
	equipment    map[string]*entity.Equipment
	maintenances map[string]*entity.Maintenance
	history      map[string]*entity.HistoryEntry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:    make(map[string]*entity.Company),
		users:        make(map[string]*entity.User),
		equipment:    make(map[string]*entity.Equipment),
		maintenances: make(map[string]*entity.Maintenance),
		history:      make(map[string]*entity.HistoryEntry),
	}
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Equipment repositorio de equipos.
func (s *Store) Equipment() *EquipmentRepo { return &EquipmentRepo{s: s} }

// Maintenances repositorio de tareas de mantenimiento.
func (s *Store) Maintenances() *MaintenanceRepo { return &MaintenanceRepo{s: s} }

// History repositorio del historial.
func (s *Store) History() *HistoryRepo { return &HistoryRepo{s: s} }

// Analytics consultas del dashboard.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner transacciones sobre el almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

var _ usecase.MaintenanceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con semántica todo-o-nada: si fn falla, las tablas
// vuelven al estado previo a la transacción.
type TxRunner struct {
	s *Store
}

// RunMaintenance ejecuta fn con los repos de tareas e historial.
func (r *TxRunner) RunMaintenance(ctx context.Context, fn func(
	maintRepo repository.MaintenanceRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	maint := cloneMap(r.s.maintenances, cloneMaintenance)
	hist := cloneMap(r.s.history, cloneHistory)
	r.s.mu.RUnlock()

	if err := fn(r.s.Maintenances(), r.s.History()); err != nil {
		r.s.mu.Lock()
		r.s.maintenances = maint
		r.s.history = hist
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Copias
// ──────────────────────────────────────────────────────────────────────────────

func cloneMap[T any](src map[string]*T, clone func(*T) *T) map[string]*T {
	out := make(map[string]*T, len(src))
	for k, v := range src {
		out[k] = clone(v)
	}
	return out
}

func cloneCompany(c *entity.Company) *entity.Company {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func cloneEquipment(e *entity.Equipment) *entity.Equipment {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

func cloneMaintenance(m *entity.Maintenance) *entity.Maintenance {
	if m == nil {
		return nil
	}
	cp := *m
	if m.CompletedDate != nil {
		d := *m.CompletedDate
		cp.CompletedDate = &d
	}
	return &cp
}

func cloneHistory(h *entity.HistoryEntry) *entity.HistoryEntry {
	if h == nil {
		return nil
	}
	cp := *h
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidades de listado
// ──────────────────────────────────────────────────────────────────────────────

// page aplica offset/limit (limit <= 0 = sin límite).
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// newestFirst ordena por fecha descendente y por ID para desempatar.
func newestFirst[T any](items []T, at func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ai, aj := at(items[i]), at(items[j])
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return id(items[i]) < id(items[j])
	})
}
