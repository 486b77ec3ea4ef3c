package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo}
}

// Create registra un usuario. El email se guarda en minúsculas; un CLIENTE
// necesita una empresa existente.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest, now time.Time) (*dto.UserResponse, error) {
	role, ok := entity.NormalizeRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("rol %q: %w", in.Role, domain.ErrInvalidInput)
	}
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("email y name son requeridos: %w", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("password de al menos 6 caracteres: %w", domain.ErrInvalidInput)
	}
	companyID := strings.TrimSpace(in.CompanyID)
	if err := uc.checkCompany(ctx, role, companyID); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// IsActive informa si el usuario existe y está activo.
func (uc *UserUseCase) IsActive(ctx context.Context, id string) (bool, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Active, nil
}

// List lista usuarios filtrando por rol y empresa.
func (uc *UserUseCase) List(ctx context.Context, f dto.UserFilter) (*dto.UserListResponse, error) {
	f.DefaultPage()
	q := repository.UserQuery{CompanyID: f.CompanyID, Limit: f.Limit, Offset: f.Offset}
	if f.Role != "" {
		role, ok := entity.NormalizeRole(f.Role)
		if !ok {
			return nil, fmt.Errorf("rol %q: %w", f.Role, domain.ErrInvalidInput)
		}
		q.Role = role
	}
	return uc.list(ctx, q, f.PageRequest)
}

// ListTechnicians técnicos activos, para asignar mantenimientos.
func (uc *UserUseCase) ListTechnicians(ctx context.Context) (*dto.UserListResponse, error) {
	active := true
	q := repository.UserQuery{Role: entity.RoleTecnico, Active: &active}
	return uc.list(ctx, q, dto.PageRequest{})
}

func (uc *UserUseCase) list(ctx context.Context, q repository.UserQuery, p dto.PageRequest) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}, nil
}

// Update actualiza los campos presentes. Un password nuevo se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest, now time.Time) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name vacío: %w", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("email vacío: %w", domain.ErrInvalidInput)
		}
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Role != nil {
		role, ok := entity.NormalizeRole(*in.Role)
		if !ok {
			return nil, fmt.Errorf("rol %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		user.Role = role
	}
	if in.CompanyID != nil {
		user.CompanyID = strings.TrimSpace(*in.CompanyID)
	}
	if err := uc.checkCompany(ctx, user.Role, user.CompanyID); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, fmt.Errorf("password de al menos 6 caracteres: %w", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = now
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrCannotDeleteOwnUser
	}
	return uc.repo.Delete(ctx, id)
}

// checkCompany un CLIENTE necesita empresa; si se indica empresa, debe existir.
func (uc *UserUseCase) checkCompany(ctx context.Context, role entity.Role, companyID string) error {
	if companyID == "" {
		if role == entity.RoleCliente {
			return domain.ErrCompanyRequiredClient
		}
		return nil
	}
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
