package repository

import (
	"context"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
)

// UserQuery filtros del listado de usuarios. Campos vacíos no filtran.
type UserQuery struct {
	Role      entity.Role
	CompanyID string
	Active    *bool
	Limit     int // 0 = sin límite
	Offset    int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, q UserQuery) ([]*entity.User, error)
	Count(ctx context.Context, q UserQuery) (int, error)
	// Delete devuelve domain.ErrInUse si el usuario tiene mantenimientos o historial.
	Delete(ctx context.Context, id string) error
}
