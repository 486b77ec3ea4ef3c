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
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// EquipmentUseCase casos de uso de equipos. La lectura respeta la visibilidad del
// actor; la escritura es de ADMIN y de CLIENTE sobre su propia empresa.
type EquipmentUseCase struct {
	repo        repository.EquipmentRepository
	companyRepo repository.CompanyRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, companyRepo repository.CompanyRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, companyRepo: companyRepo}
}

// List lista los equipos visibles para el actor. El filtro por empresa solo aplica a ADMIN.
func (uc *EquipmentUseCase) List(ctx context.Context, actor visibility.Actor, f dto.EquipmentFilter) (*dto.EquipmentListResponse, error) {
	f.DefaultPage()
	out := &dto.EquipmentListResponse{
		Items: []dto.EquipmentResponse{},
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	scope := visibility.Scope(actor, visibility.KindEquipment)
	if scope.Empty() {
		return out, nil
	}

	q := repository.EquipmentQuery{Search: strings.TrimSpace(f.Search), Limit: f.Limit, Offset: f.Offset}
	if actor.Role == entity.RoleAdmin && f.CompanyID != "" && f.CompanyID != "all" {
		q.CompanyID = f.CompanyID
	}
	if f.Status != "" {
		st := entity.EquipmentStatus(f.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("estado de equipo %q: %w", f.Status, domain.ErrInvalidInput)
		}
		q.Statuses = []entity.EquipmentStatus{st}
	}

	list, err := uc.repo.List(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		out.Items = append(out.Items, *toEquipmentResponse(d.Equipment, d.CompanyName))
	}
	out.Page.Total = total
	return out, nil
}

// GetByID obtiene un equipo visible para el actor; domain.ErrNotFound si no existe o no es visible.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, actor visibility.Actor, id string) (*dto.EquipmentResponse, error) {
	eq, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq, uc.companyName(ctx, eq.CompanyID)), nil
}

// Create registra un equipo. TECNICO no puede crear; CLIENTE solo en su empresa.
func (uc *EquipmentUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateEquipmentRequest, now time.Time) (*dto.EquipmentResponse, error) {
	companyID, err := writableCompany(actor, in.CompanyID)
	if err != nil {
		return nil, err
	}
	eq := &entity.Equipment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      strings.TrimSpace(in.Type),
		Brand:     strings.TrimSpace(in.Brand),
		Model:     strings.TrimSpace(in.Model),
		Serial:    strings.TrimSpace(in.Serial),
		Status:    entity.EquipmentStatus(in.Status),
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if eq.Status == "" {
		eq.Status = entity.EquipmentActive
	}
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, eq.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", eq.CompanyID, domain.ErrNotFound)
	}
	if existing, err := uc.repo.GetBySerial(ctx, eq.Serial); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrSerialAlreadyExists
	}
	if err := uc.repo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq, company.Name), nil
}

// Update actualiza un equipo. CLIENTE no puede moverlo a otra empresa.
func (uc *EquipmentUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateEquipmentRequest, now time.Time) (*dto.EquipmentResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleCliente {
		return nil, domain.ErrForbidden
	}
	eq, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.CompanyID != nil && actor.Role == entity.RoleAdmin && *in.CompanyID != eq.CompanyID {
		company, err := uc.companyRepo.GetByID(ctx, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, fmt.Errorf("empresa %s: %w", *in.CompanyID, domain.ErrNotFound)
		}
		eq.CompanyID = company.ID
	}
	if in.Type != nil {
		eq.Type = strings.TrimSpace(*in.Type)
	}
	if in.Brand != nil {
		eq.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Model != nil {
		eq.Model = strings.TrimSpace(*in.Model)
	}
	if in.Serial != nil && strings.TrimSpace(*in.Serial) != eq.Serial {
		serial := strings.TrimSpace(*in.Serial)
		if existing, err := uc.repo.GetBySerial(ctx, serial); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrSerialAlreadyExists
		}
		eq.Serial = serial
	}
	if in.Status != nil {
		eq.Status = entity.EquipmentStatus(*in.Status)
	}
	if in.Location != nil {
		eq.Location = strings.TrimSpace(*in.Location)
	}
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}
	eq.UpdatedAt = now
	if err := uc.repo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq, uc.companyName(ctx, eq.CompanyID)), nil
}

// Delete elimina un equipo sin mantenimientos ni historial. Solo ADMIN.
func (uc *EquipmentUseCase) Delete(ctx context.Context, actor visibility.Actor, id string) error {
	if actor.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// visible carga el equipo si existe y el actor puede verlo.
func (uc *EquipmentUseCase) visible(ctx context.Context, actor visibility.Actor, id string) (*entity.Equipment, error) {
	scope := visibility.Scope(actor, visibility.KindEquipment)
	if scope.Empty() {
		return nil, domain.ErrNotFound
	}
	eq, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	if scope.Unrestricted() {
		return eq, nil
	}
	n, err := uc.repo.Count(ctx, scope, repository.EquipmentQuery{ID: id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return eq, nil
}

func (uc *EquipmentUseCase) companyName(ctx context.Context, companyID string) string {
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || c == nil {
		return ""
	}
	return c.Name
}

// writableCompany empresa sobre la que el actor puede registrar equipos.
func writableCompany(actor visibility.Actor, requested string) (string, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		if strings.TrimSpace(requested) == "" {
			return "", fmt.Errorf("company_id es requerido: %w", domain.ErrInvalidInput)
		}
		return strings.TrimSpace(requested), nil
	case entity.RoleCliente:
		if actor.CompanyID == "" {
			return "", domain.ErrForbidden
		}
		return actor.CompanyID, nil
	default:
		return "", domain.ErrForbidden
	}
}

func validateEquipment(eq *entity.Equipment) error {
	switch {
	case eq.Type == "":
		return fmt.Errorf("type es requerido: %w", domain.ErrInvalidInput)
	case eq.Brand == "":
		return fmt.Errorf("brand es requerido: %w", domain.ErrInvalidInput)
	case eq.Serial == "":
		return fmt.Errorf("serial es requerido: %w", domain.ErrInvalidInput)
	case !eq.Status.Valid():
		return fmt.Errorf("estado de equipo %q: %w", eq.Status, domain.ErrInvalidInput)
	}
	return nil
}
