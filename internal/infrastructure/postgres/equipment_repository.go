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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const equipmentColumns = `e.id, e.company_id, e.type, e.brand, e.model, e.serial, e.status, e.location, e.created_at, e.updated_at`

// EquipmentRepo equipos sobre PostgreSQL. Los listados compilan el
// visibility.Filter a SQL con squirrel.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Acepta pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un equipo.
func (r *EquipmentRepo) Create(ctx context.Context, eq *entity.Equipment) error {
	query := `
		INSERT INTO equipment (id, company_id, type, brand, model, serial, status, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		eq.ID, eq.CompanyID, eq.Type, eq.Brand, eq.Model, eq.Serial, string(eq.Status), eq.Location,
		eq.CreatedAt, eq.UpdatedAt,
	)
	return equipmentWriteErr("insert equipment", eq, err)
}

// GetByID obtiene un equipo; (nil, nil) si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	eq, err := scanEquipment(r.q.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipment e WHERE e.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return eq, nil
}

// GetBySerial obtiene un equipo por serial.
func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error) {
	eq, err := scanEquipment(r.q.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipment e WHERE e.serial = $1`, serial))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment by serial: %w", err)
	}
	return eq, nil
}

// Update reemplaza un equipo existente.
func (r *EquipmentRepo) Update(ctx context.Context, eq *entity.Equipment) error {
	query := `
		UPDATE equipment SET company_id = $2, type = $3, brand = $4, model = $5, serial = $6, status = $7, location = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		eq.ID, eq.CompanyID, eq.Type, eq.Brand, eq.Model, eq.Serial, string(eq.Status), eq.Location, eq.UpdatedAt,
	)
	if err != nil {
		return equipmentWriteErr("update equipment", eq, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un equipo sin tareas ni historial.
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete equipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List equipos visibles, más recientes primero.
func (r *EquipmentRepo) List(ctx context.Context, scope visibility.Filter, q repository.EquipmentQuery) ([]repository.EquipmentDetail, error) {
	b := equipmentFilter(psql.Select(equipmentColumns, "c.name").
		From("equipment e").
		Join("companies c ON c.id = e.company_id"), scope, q).
		OrderBy("e.created_at DESC", "e.id")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list equipment: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	list := make([]repository.EquipmentDetail, 0)
	for rows.Next() {
		var (
			e      entity.Equipment
			status string
			d      repository.EquipmentDetail
		)
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Type, &e.Brand, &e.Model, &e.Serial, &status, &e.Location,
			&e.CreatedAt, &e.UpdatedAt, &d.CompanyName); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		e.Status = entity.EquipmentStatus(status)
		d.Equipment = &e
		list = append(list, d)
	}
	return list, rows.Err()
}

// Count equipos visibles que cumplen los filtros.
func (r *EquipmentRepo) Count(ctx context.Context, scope visibility.Filter, q repository.EquipmentQuery) (int, error) {
	query, args, err := equipmentFilter(psql.Select("COUNT(*)").From("equipment e"), scope, q).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count equipment: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return n, nil
}

func equipmentFilter(b sq.SelectBuilder, scope visibility.Filter, q repository.EquipmentQuery) sq.SelectBuilder {
	b = b.Where(equipmentScope(scope))
	if q.ID != "" {
		b = b.Where(sq.Eq{"e.id": q.ID})
	}
	if q.CompanyID != "" {
		b = b.Where(sq.Eq{"e.company_id": q.CompanyID})
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(sq.Eq{"e.status": statuses})
	}
	if q.Search != "" {
		b = b.Where(allTerms(q.Search, "e.type", "e.brand", "e.model", "e.serial"))
	}
	return b
}

func equipmentWriteErr(op string, eq *entity.Equipment, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrSerialAlreadyExists
	}
	if _, ok := foreignKeyConstraint(err); ok {
		return fmt.Errorf("empresa %s: %w", eq.CompanyID, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanEquipment(row rowScanner) (*entity.Equipment, error) {
	var e entity.Equipment
	var status string
	err := row.Scan(&e.ID, &e.CompanyID, &e.Type, &e.Brand, &e.Model, &e.Serial, &status, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = entity.EquipmentStatus(status)
	return &e, nil
}
