package repository

import (
	"context"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// EquipmentQuery filtros adicionales al alcance de visibilidad.
type EquipmentQuery struct {
	ID        string
	CompanyID string
	Statuses  []entity.EquipmentStatus
	Search    string // términos sobre tipo, marca, modelo o serial
	Limit     int    // 0 = sin límite
	Offset    int
}

// EquipmentDetail equipo con el nombre de su empresa.
type EquipmentDetail struct {
	Equipment   *entity.Equipment
	CompanyName string
}

// EquipmentRepository puerto de persistencia de equipos. Todo listado recibe el
// visibility.Filter del actor y lo aplica antes que cualquier otro filtro.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error)
	Update(ctx context.Context, eq *entity.Equipment) error
	// Delete devuelve domain.ErrInUse si el equipo tiene mantenimientos o historial.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope visibility.Filter, q EquipmentQuery) ([]EquipmentDetail, error)
	Count(ctx context.Context, scope visibility.Filter, q EquipmentQuery) (int, error)
}
