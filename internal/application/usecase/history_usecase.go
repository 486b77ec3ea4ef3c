package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// HistoryUseCase consulta del historial de equipos.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List historial visible para el actor, más reciente primero. Los filtros por
// técnico y empresa solo aplican a ADMIN. Las fechas se interpretan en loc.
func (uc *HistoryUseCase) List(ctx context.Context, actor visibility.Actor, f dto.HistoryFilter, loc *time.Location) (*dto.HistoryListResponse, error) {
	f.DefaultPage()
	out := &dto.HistoryListResponse{
		Items: []dto.HistoryResponse{},
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	scope := visibility.Scope(actor, visibility.KindHistoryEntry)
	if scope.Empty() {
		return out, nil
	}

	q := repository.HistoryQuery{EquipmentID: f.EquipmentID, Limit: f.Limit, Offset: f.Offset}
	if actor.Role == entity.RoleAdmin {
		q.TechnicianID = f.TechnicianID
		if f.CompanyID != "all" {
			q.CompanyID = f.CompanyID
		}
	}
	if f.From != "" {
		from, err := ParseDate(f.From, loc)
		if err != nil {
			return nil, err
		}
		q.From = from
	}
	if f.To != "" {
		to, err := parseDateUpTo(f.To, loc)
		if err != nil {
			return nil, err
		}
		q.To = to
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
		out.Items = append(out.Items, toHistoryResponse(d))
	}
	out.Page.Total = total
	return out, nil
}
