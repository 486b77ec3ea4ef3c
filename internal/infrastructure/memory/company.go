package memory

import (
	"context"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s *Store
}

// Create persiste una empresa. NIT único.
func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.NIT == company.NIT {
			return domain.ErrNITAlreadyExists
		}
	}
	r.s.companies[company.ID] = cloneCompany(company)
	return nil
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCompany(r.s.companies[id]), nil
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(_ context.Context, nit string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.companies {
		if c.NIT == nit {
			return cloneCompany(c), nil
		}
	}
	return nil, nil
}

// Update reemplaza una empresa existente.
func (r *CompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.companies {
		if c.ID != company.ID && c.NIT == company.NIT {
			return domain.ErrNITAlreadyExists
		}
	}
	r.s.companies[company.ID] = cloneCompany(company)
	return nil
}

// List devuelve empresas, más recientes primero.
func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	list := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		list = append(list, cloneCompany(c))
	}
	r.s.mu.RUnlock()
	newestFirst(list,
		func(c *entity.Company) time.Time { return c.CreatedAt },
		func(c *entity.Company) string { return c.ID })
	return page(list, limit, offset), nil
}

// Count total de empresas.
func (r *CompanyRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.companies), nil
}

// Delete elimina una empresa sin usuarios ni equipos.
func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[id]; !ok {
		return domain.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.CompanyID == id {
			return domain.ErrInUse
		}
	}
	for _, e := range r.s.equipment {
		if e.CompanyID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.companies, id)
	return nil
}
