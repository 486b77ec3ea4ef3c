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

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

const maintenanceColumns = `m.id, m.equipment_id, m.technician_id, m.kind, m.status, m.scheduled_date, m.completed_date,
	m.description, m.observations, m.report_url, m.created_at, m.updated_at`

// maintenanceDetailColumns tarea + equipo + empresa + técnico, en el orden de scanMaintenanceDetail.
const maintenanceDetailColumns = maintenanceColumns + `, ` + equipmentColumns +
	`, c.name, COALESCE(u.name, ''), COALESCE(u.email, '')`

// MaintenanceRepo tareas de mantenimiento sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

// Create persiste una tarea sobre un equipo y técnico existentes.
func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.Maintenance) error {
	query := `
		INSERT INTO maintenances (id, equipment_id, technician_id, kind, status, scheduled_date, completed_date,
			description, observations, report_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.EquipmentID, m.TechnicianID, string(m.Kind), string(m.Status), m.ScheduledDate, m.CompletedDate,
		m.Description, m.Observations, m.ReportURL, m.CreatedAt, m.UpdatedAt,
	)
	return maintenanceWriteErr("insert maintenance", m, err)
}

// GetByID obtiene una tarea; (nil, nil) si no existe.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*entity.Maintenance, error) {
	m, err := scanMaintenance(r.q.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenances m WHERE m.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance: %w", err)
	}
	return m, nil
}

// GetDetail obtiene una tarea con equipo, empresa y técnico.
func (r *MaintenanceRepo) GetDetail(ctx context.Context, id string) (*repository.MaintenanceDetail, error) {
	query, args, err := maintenanceSelect(maintenanceDetailColumns).Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build maintenance detail: %w", err)
	}
	d, err := scanMaintenanceDetail(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance detail: %w", err)
	}
	return d, nil
}

// Update reemplaza una tarea existente.
func (r *MaintenanceRepo) Update(ctx context.Context, m *entity.Maintenance) error {
	query := `
		UPDATE maintenances SET equipment_id = $2, technician_id = $3, kind = $4, status = $5, scheduled_date = $6,
			completed_date = $7, description = $8, observations = $9, report_url = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.EquipmentID, m.TechnicianID, string(m.Kind), string(m.Status), m.ScheduledDate,
		m.CompletedDate, m.Description, m.Observations, m.ReportURL, m.UpdatedAt,
	)
	if err != nil {
		return maintenanceWriteErr("update maintenance", m, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea; el historial que la referenciaba queda con maintenance_id NULL.
func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tareas visibles ordenadas por fecha programada (descendente salvo OrderAsc).
func (r *MaintenanceRepo) List(ctx context.Context, scope visibility.Filter, q repository.MaintenanceQuery) ([]repository.MaintenanceDetail, error) {
	order := "m.scheduled_date DESC"
	if q.OrderAsc {
		order = "m.scheduled_date ASC"
	}
	b := maintenanceFilter(maintenanceSelect(maintenanceDetailColumns), scope, q).OrderBy(order, "m.id")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list maintenances: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenances: %w", err)
	}
	defer rows.Close()

	list := make([]repository.MaintenanceDetail, 0)
	for rows.Next() {
		d, err := scanMaintenanceDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance: %w", err)
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

// Count tareas visibles que cumplen los filtros.
func (r *MaintenanceRepo) Count(ctx context.Context, scope visibility.Filter, q repository.MaintenanceQuery) (int, error) {
	b := maintenanceFilter(psql.Select("COUNT(*)").From("maintenances m").Join("equipment e ON e.id = m.equipment_id"), scope, q)
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count maintenances: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count maintenances: %w", err)
	}
	return n, nil
}

func maintenanceSelect(columns string) sq.SelectBuilder {
	return psql.Select(columns).
		From("maintenances m").
		Join("equipment e ON e.id = m.equipment_id").
		Join("companies c ON c.id = e.company_id").
		LeftJoin("users u ON u.id = m.technician_id")
}

func maintenanceFilter(b sq.SelectBuilder, scope visibility.Filter, q repository.MaintenanceQuery) sq.SelectBuilder {
	b = b.Where(taskScope(scope))
	if q.ID != "" {
		b = b.Where(sq.Eq{"m.id": q.ID})
	}
	if q.EquipmentID != "" {
		b = b.Where(sq.Eq{"m.equipment_id": q.EquipmentID})
	}
	if q.TechnicianID != "" {
		b = b.Where(sq.Eq{"m.technician_id": q.TechnicianID})
	}
	if q.CompanyID != "" {
		b = b.Where(sq.Eq{"e.company_id": q.CompanyID})
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(sq.Eq{"m.status": statuses})
	}
	if q.Kind != "" {
		b = b.Where(sq.Eq{"m.kind": string(q.Kind)})
	}
	if !q.ScheduledBefore.IsZero() {
		b = b.Where(sq.Lt{"m.scheduled_date": q.ScheduledBefore})
	}
	if q.Search != "" {
		b = b.Where(allTerms(q.Search, "m.description", "e.type", "e.brand", "e.serial", "e.model"))
	}
	return b
}

func maintenanceWriteErr(op string, m *entity.Maintenance, err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := foreignKeyConstraint(err); ok {
		if constraint == "maintenances_technician_fk" {
			return fmt.Errorf("técnico %s: %w", m.TechnicianID, domain.ErrInvalidTechnician)
		}
		return fmt.Errorf("equipo %s: %w", m.EquipmentID, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanMaintenance(row rowScanner) (*entity.Maintenance, error) {
	var m entity.Maintenance
	var kind, status string
	err := row.Scan(&m.ID, &m.EquipmentID, &m.TechnicianID, &kind, &status, &m.ScheduledDate, &m.CompletedDate,
		&m.Description, &m.Observations, &m.ReportURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MaintenanceKind(kind)
	m.Status = entity.MaintenanceStatus(status)
	return &m, nil
}

func scanMaintenanceDetail(row rowScanner) (*repository.MaintenanceDetail, error) {
	var (
		m                      entity.Maintenance
		e                      entity.Equipment
		kind, status, eqStatus string
		d                      repository.MaintenanceDetail
	)
	err := row.Scan(&m.ID, &m.EquipmentID, &m.TechnicianID, &kind, &status, &m.ScheduledDate, &m.CompletedDate,
		&m.Description, &m.Observations, &m.ReportURL, &m.CreatedAt, &m.UpdatedAt,
		&e.ID, &e.CompanyID, &e.Type, &e.Brand, &e.Model, &e.Serial, &eqStatus, &e.Location, &e.CreatedAt, &e.UpdatedAt,
		&d.CompanyName, &d.TechnicianName, &d.TechnicianEmail)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MaintenanceKind(kind)
	m.Status = entity.MaintenanceStatus(status)
	e.Status = entity.EquipmentStatus(eqStatus)
	d.Maintenance = &m
	d.Equipment = &e
	return &d, nil
}
