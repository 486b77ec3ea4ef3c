package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del dashboard sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// EquipmentByStatus equipos visibles agrupados por estado.
func (r *AnalyticsRepo) EquipmentByStatus(ctx context.Context, scope visibility.Filter) (map[entity.EquipmentStatus]int, error) {
	query, args, err := psql.Select("e.status", "COUNT(*)").
		From("equipment e").
		Where(equipmentScope(scope)).
		GroupBy("e.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build equipment by status: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("equipment by status: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.EquipmentStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan equipment by status: %w", err)
		}
		out[entity.EquipmentStatus(status)] = n
	}
	return out, rows.Err()
}

// MaintenanceBuckets tareas visibles por (estado, tipo).
func (r *AnalyticsRepo) MaintenanceBuckets(ctx context.Context, scope visibility.Filter) ([]repository.MaintenanceBucket, error) {
	query, args, err := tasks(scope, "m.status", "m.kind", "COUNT(*)").
		GroupBy("m.status", "m.kind").
		OrderBy("m.status", "m.kind").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build maintenance buckets: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("maintenance buckets: %w", err)
	}
	defer rows.Close()

	out := make([]repository.MaintenanceBucket, 0)
	for rows.Next() {
		var status, kind string
		var n int
		if err := rows.Scan(&status, &kind, &n); err != nil {
			return nil, fmt.Errorf("scan maintenance bucket: %w", err)
		}
		out = append(out, repository.MaintenanceBucket{
			Status: entity.MaintenanceStatus(status),
			Kind:   entity.MaintenanceKind(kind),
			Count:  n,
		})
	}
	return out, rows.Err()
}

// CompletedBetween tareas COMPLETADO con fecha realizada en [from, to).
func (r *AnalyticsRepo) CompletedBetween(ctx context.Context, scope visibility.Filter, from, to time.Time) (int, error) {
	b := tasks(scope, "COUNT(*)").
		Where(sq.Eq{"m.status": string(entity.MaintenanceCompleted)}).
		Where(sq.GtOrEq{"m.completed_date": from})
	if !to.IsZero() {
		b = b.Where(sq.Lt{"m.completed_date": to})
	}
	return r.count(ctx, "completed between", b)
}

// PendingCreatedBefore tareas pendientes creadas antes de before.
func (r *AnalyticsRepo) PendingCreatedBefore(ctx context.Context, scope visibility.Filter, before time.Time) (int, error) {
	pending := make([]string, len(entity.PendingStatuses))
	for i, s := range entity.PendingStatuses {
		pending[i] = string(s)
	}
	b := tasks(scope, "COUNT(*)").
		Where(sq.Eq{"m.status": pending}).
		Where(sq.Lt{"m.created_at": before})
	return r.count(ctx, "pending created before", b)
}

// MonthlyByKind tareas programadas desde since agrupadas por mes (en loc) y tipo.
func (r *AnalyticsRepo) MonthlyByKind(ctx context.Context, scope visibility.Filter, since time.Time, loc *time.Location) ([]repository.MonthlyKindCount, error) {
	month := sq.Expr("to_char(date_trunc('month', m.scheduled_date AT TIME ZONE ?::text), 'YYYY-MM')", zoneName(loc))
	query, args, err := psql.Select().
		Column(sq.Alias(month, "month")).
		Columns("m.kind", "COUNT(*)").
		From("maintenances m").
		Join("equipment e ON e.id = m.equipment_id").
		Where(taskScope(scope)).
		Where(sq.GtOrEq{"m.scheduled_date": since}).
		GroupBy("month", "m.kind").
		OrderBy("month", "m.kind").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build monthly by kind: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly by kind: %w", err)
	}
	defer rows.Close()

	out := make([]repository.MonthlyKindCount, 0)
	for rows.Next() {
		var c repository.MonthlyKindCount
		var kind string
		if err := rows.Scan(&c.Month, &kind, &c.Count); err != nil {
			return nil, fmt.Errorf("scan monthly by kind: %w", err)
		}
		c.Kind = entity.MaintenanceKind(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) count(ctx context.Context, op string, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// tasks SELECT sobre las tareas visibles (maintenances m con equipment e).
func tasks(scope visibility.Filter, columns ...string) sq.SelectBuilder {
	return psql.Select(columns...).
		From("maintenances m").
		Join("equipment e ON e.id = m.equipment_id").
		Where(taskScope(scope))
}

// zoneName nombre IANA para AT TIME ZONE; time.Local no tiene nombre portable.
func zoneName(loc *time.Location) string {
	if loc == nil || loc.String() == "Local" {
		return "UTC"
	}
	return loc.String()
}
