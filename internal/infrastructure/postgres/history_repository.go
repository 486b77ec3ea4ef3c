package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyDetailColumns = `h.id, h.equipment_id, COALESCE(h.maintenance_id, ''), h.technician_id, h.date, h.observations, h.created_at, ` +
	equipmentColumns + `, c.name, COALESCE(u.name, ''), COALESCE(m.kind, ''), COALESCE(m.status, '')`

// HistoryRepo historial sobre PostgreSQL (solo inserción y lectura).
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create agrega una entrada. Una tarea vacía se guarda como NULL.
func (r *HistoryRepo) Create(ctx context.Context, h *entity.HistoryEntry) error {
	query := `
		INSERT INTO history (id, equipment_id, maintenance_id, technician_id, date, observations, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.EquipmentID, h.MaintenanceID, h.TechnicianID, h.Date, h.Observations, h.CreatedAt,
	)
	if err != nil {
		if constraint, ok := foreignKeyConstraint(err); ok {
			switch constraint {
			case "history_technician_fk":
				return fmt.Errorf("técnico %s: %w", h.TechnicianID, domain.ErrInvalidTechnician)
			case "history_maintenance_fk":
				return fmt.Errorf("tarea %s: %w", h.MaintenanceID, domain.ErrNotFound)
			default:
				return fmt.Errorf("equipo %s: %w", h.EquipmentID, domain.ErrNotFound)
			}
		}
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// List entradas visibles, más recientes primero.
func (r *HistoryRepo) List(ctx context.Context, scope visibility.Filter, q repository.HistoryQuery) ([]repository.HistoryDetail, error) {
	b := historyFilter(psql.Select(historyDetailColumns).
		From("history h").
		Join("equipment e ON e.id = h.equipment_id").
		Join("companies c ON c.id = e.company_id").
		LeftJoin("users u ON u.id = h.technician_id").
		LeftJoin("maintenances m ON m.id = h.maintenance_id"), scope, q).
		OrderBy("h.date DESC", "h.id")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	list := make([]repository.HistoryDetail, 0)
	for rows.Next() {
		var (
			h                       entity.HistoryEntry
			e                       entity.Equipment
			eqStatus, kind, mStatus string
			d                       repository.HistoryDetail
		)
		if err := rows.Scan(&h.ID, &h.EquipmentID, &h.MaintenanceID, &h.TechnicianID, &h.Date, &h.Observations, &h.CreatedAt,
			&e.ID, &e.CompanyID, &e.Type, &e.Brand, &e.Model, &e.Serial, &eqStatus, &e.Location, &e.CreatedAt, &e.UpdatedAt,
			&d.CompanyName, &d.TechnicianName, &kind, &mStatus); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Status = entity.EquipmentStatus(eqStatus)
		d.Entry = &h
		d.Equipment = &e
		d.MaintenanceKind = entity.MaintenanceKind(kind)
		d.MaintenanceStatus = entity.MaintenanceStatus(mStatus)
		list = append(list, d)
	}
	return list, rows.Err()
}

// Count entradas visibles que cumplen los filtros.
func (r *HistoryRepo) Count(ctx context.Context, scope visibility.Filter, q repository.HistoryQuery) (int, error) {
	b := historyFilter(psql.Select("COUNT(*)").From("history h").Join("equipment e ON e.id = h.equipment_id"), scope, q)
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count history: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func historyFilter(b sq.SelectBuilder, scope visibility.Filter, q repository.HistoryQuery) sq.SelectBuilder {
	b = b.Where(historyScope(scope))
	if q.EquipmentID != "" {
		b = b.Where(sq.Eq{"h.equipment_id": q.EquipmentID})
	}
	if q.MaintenanceID != "" {
		b = b.Where(sq.Eq{"h.maintenance_id": q.MaintenanceID})
	}
	if q.TechnicianID != "" {
		b = b.Where(sq.Eq{"h.technician_id": q.TechnicianID})
	}
	if q.CompanyID != "" {
		b = b.Where(sq.Eq{"e.company_id": q.CompanyID})
	}
	if !q.From.IsZero() {
		b = b.Where(sq.GtOrEq{"h.date": q.From})
	}
	if !q.To.IsZero() {
		b = b.Where(sq.LtOrEq{"h.date": q.To})
	}
	return b
}
