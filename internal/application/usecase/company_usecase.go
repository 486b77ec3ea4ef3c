package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/pkg/nit"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Devuelve domain.ErrNITAlreadyExists si el NIT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest, now time.Time) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.NIT) == "" {
		return nil, fmt.Errorf("name y nit son requeridos: %w", domain.ErrInvalidInput)
	}
	taxID, err := normalizeNIT(in.NIT)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNIT(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNITAlreadyExists
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		NIT:       taxID,
		Contact:   strings.TrimSpace(in.Contact),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.CompanyListResponse, error) {
	p.DefaultPage()
	list, err := uc.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}, nil
}

// Update actualiza los campos presentes. Cambiar el NIT exige que no lo use otra empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest, now time.Time) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name vacío: %w", domain.ErrInvalidInput)
		}
		company.Name = name
	}
	if in.NIT != nil {
		if strings.TrimSpace(*in.NIT) == "" {
			return nil, fmt.Errorf("nit vacío: %w", domain.ErrInvalidInput)
		}
		taxID, err := normalizeNIT(*in.NIT)
		if err != nil {
			return nil, err
		}
		if taxID != company.NIT {
			other, err := uc.repo.GetByNIT(ctx, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != company.ID {
				return nil, domain.ErrNITAlreadyExists
			}
			company.NIT = taxID
		}
	}
	if in.Contact != nil {
		company.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Phone != nil {
		company.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		company.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		company.Address = strings.TrimSpace(*in.Address)
	}
	company.UpdatedAt = now
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete elimina una empresa sin usuarios ni equipos (domain.ErrInUse en otro caso).
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// normalizeNIT quita puntos y espacios y valida el dígito de verificación.
func normalizeNIT(raw string) (string, error) {
	taxID := nit.Normalize(raw)
	if err := nit.Validate(taxID); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	return taxID, nil
}
