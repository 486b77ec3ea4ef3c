package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

// Create persiste un usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneUser(r.s.users[id]), nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// Update reemplaza un usuario existente.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) filter(q repository.UserQuery) []*entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if q.CompanyID != "" && u.CompanyID != q.CompanyID {
			continue
		}
		if q.Active != nil && u.Active != *q.Active {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out
}

// List usuarios filtrados, más recientes primero.
func (r *UserRepo) List(_ context.Context, q repository.UserQuery) ([]*entity.User, error) {
	list := r.filter(q)
	newestFirst(list,
		func(u *entity.User) time.Time { return u.CreatedAt },
		func(u *entity.User) string { return u.ID })
	return page(list, q.Limit, q.Offset), nil
}

// Count usuarios que cumplen los filtros (ignora paginación).
func (r *UserRepo) Count(_ context.Context, q repository.UserQuery) (int, error) {
	return len(r.filter(q)), nil
}

// Delete elimina un usuario sin tareas ni historial.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, m := range r.s.maintenances {
		if m.TechnicianID == id {
			return domain.ErrInUse
		}
	}
	for _, h := range r.s.history {
		if h.TechnicianID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.users, id)
	return nil
}
