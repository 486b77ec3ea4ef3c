package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
	"github.com/jhoicas/MantenPro-api/internal/observability/metrics"
)

// MaintenanceUseCase casos de uso de tareas de mantenimiento.
//
// Crear y cambiar de estado escriben una entrada de historial en la misma
// transacción que la tarea.
type MaintenanceUseCase struct {
	repo        repository.MaintenanceRepository
	equipRepo   repository.EquipmentRepository
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	tx          MaintenanceTxRunner
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(
	repo repository.MaintenanceRepository,
	equipRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	historyRepo repository.HistoryRepository,
	tx MaintenanceTxRunner,
) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		repo:        repo,
		equipRepo:   equipRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		tx:          tx,
	}
}

// List lista las tareas visibles, fecha programada descendente, cada fila anotada
// con su alerta a la fecha now.
func (uc *MaintenanceUseCase) List(ctx context.Context, actor visibility.Actor, f dto.MaintenanceFilter, now time.Time) (*dto.MaintenanceListResponse, error) {
	f.DefaultPage()
	out := &dto.MaintenanceListResponse{
		Items: []dto.MaintenanceResponse{},
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	scope := visibility.Scope(actor, visibility.KindMaintenanceTask)
	if scope.Empty() {
		return out, nil
	}

	q := repository.MaintenanceQuery{
		ID:           f.ID,
		EquipmentID:  f.EquipmentID,
		TechnicianID: f.TechnicianID,
		Search:       strings.TrimSpace(f.Search),
		Limit:        f.Limit,
		Offset:       f.Offset,
	}
	if actor.Role == entity.RoleAdmin && f.CompanyID != "" && f.CompanyID != "all" {
		q.CompanyID = f.CompanyID
	}
	if f.Status != "" {
		st := entity.MaintenanceStatus(f.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("estado de mantenimiento %q: %w", f.Status, domain.ErrInvalidInput)
		}
		q.Statuses = []entity.MaintenanceStatus{st}
	}
	if f.Kind != "" {
		k := entity.MaintenanceKind(f.Kind)
		if !k.Valid() {
			return nil, fmt.Errorf("tipo de mantenimiento %q: %w", f.Kind, domain.ErrInvalidInput)
		}
		q.Kind = k
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
		out.Items = append(out.Items, ToMaintenanceResponse(d, now))
	}
	out.Page.Total = total
	return out, nil
}

// GetByID obtiene una tarea visible con su historial.
func (uc *MaintenanceUseCase) GetByID(ctx context.Context, actor visibility.Actor, id string, now time.Time) (*dto.MaintenanceResponse, error) {
	d, err := uc.visibleDetail(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := ToMaintenanceResponse(*d, now)

	// La tarea ya es visible: se muestra su historial completo.
	all := visibility.Filter{Kind: visibility.KindHistoryEntry, Mode: visibility.ModeAll}
	entries, err := uc.historyRepo.List(ctx, all, repository.HistoryQuery{MaintenanceID: id})
	if err != nil {
		return nil, err
	}
	for _, h := range entries {
		out.History = append(out.History, toHistoryResponse(h))
	}
	return &out, nil
}

// Create programa un mantenimiento. TECNICO no puede crear; CLIENTE solo sobre
// equipos de su empresa. El técnico asignado debe tener rol TECNICO.
func (uc *MaintenanceUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateMaintenanceRequest, now time.Time) (*dto.MaintenanceResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleCliente {
		return nil, domain.ErrForbidden
	}

	m := &entity.Maintenance{
		ID:           uuid.New().String(),
		EquipmentID:  strings.TrimSpace(in.EquipmentID),
		TechnicianID: strings.TrimSpace(in.TechnicianID),
		Kind:         entity.MaintenanceKind(in.Kind),
		Status:       entity.MaintenanceStatus(in.Status),
		Description:  strings.TrimSpace(in.Description),
		Observations: in.Observations,
		ReportURL:    strings.TrimSpace(in.ReportURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if m.Status == "" {
		m.Status = entity.MaintenanceScheduled
	}
	if m.EquipmentID == "" || m.TechnicianID == "" {
		return nil, fmt.Errorf("equipment_id y technician_id son requeridos: %w", domain.ErrInvalidInput)
	}
	if !m.Kind.Valid() {
		return nil, fmt.Errorf("tipo de mantenimiento %q: %w", in.Kind, domain.ErrInvalidInput)
	}
	if !m.Status.Valid() {
		return nil, fmt.Errorf("estado de mantenimiento %q: %w", in.Status, domain.ErrInvalidInput)
	}
	if m.Description == "" {
		return nil, fmt.Errorf("description es requerida: %w", domain.ErrInvalidInput)
	}
	scheduled, err := ParseDate(in.ScheduledDate, now.Location())
	if err != nil {
		return nil, err
	}
	m.ScheduledDate = scheduled
	if in.CompletedDate != nil && strings.TrimSpace(*in.CompletedDate) != "" {
		done, err := ParseDate(*in.CompletedDate, now.Location())
		if err != nil {
			return nil, err
		}
		m.CompletedDate = &done
	}
	if m.Status == entity.MaintenanceCompleted && m.CompletedDate == nil {
		stamp := now
		m.CompletedDate = &stamp
	}

	eq, err := uc.equipRepo.GetByID(ctx, m.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, fmt.Errorf("equipo %s: %w", m.EquipmentID, domain.ErrNotFound)
	}
	if actor.Role == entity.RoleCliente && (actor.CompanyID == "" || eq.CompanyID != actor.CompanyID) {
		return nil, domain.ErrForbidden
	}
	tech, err := uc.userRepo.GetByID(ctx, m.TechnicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil || tech.Role != entity.RoleTecnico {
		return nil, domain.ErrInvalidTechnician
	}

	entry := &entity.HistoryEntry{
		ID:            uuid.New().String(),
		EquipmentID:   m.EquipmentID,
		MaintenanceID: m.ID,
		TechnicianID:  m.TechnicianID,
		Date:          now,
		Observations:  ScheduledObservation(m.Kind, m.Description),
		CreatedAt:     now,
	}
	err = uc.tx.RunMaintenance(ctx, func(maintRepo repository.MaintenanceRepository, historyRepo repository.HistoryRepository) error {
		if err := maintRepo.Create(ctx, m); err != nil {
			return err
		}
		return historyRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("crear mantenimiento: %w", err)
	}
	metrics.IncHistoryWrite("scheduled")

	out := ToMaintenanceResponse(repository.MaintenanceDetail{
		Maintenance:     m,
		Equipment:       eq,
		TechnicianName:  tech.Name,
		TechnicianEmail: tech.Email,
	}, now)
	return &out, nil
}

// Update actualiza una tarea visible para el actor. COMPLETADO sin fecha
// realizada la fija en now; un cambio de estado deja constancia en el historial
// a nombre del actor.
func (uc *MaintenanceUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateMaintenanceRequest, now time.Time) (*dto.MaintenanceResponse, error) {
	d, err := uc.visibleDetail(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	m := d.Maintenance
	prevStatus := m.Status

	if in.Kind != nil {
		k := entity.MaintenanceKind(*in.Kind)
		if !k.Valid() {
			return nil, fmt.Errorf("tipo de mantenimiento %q: %w", *in.Kind, domain.ErrInvalidInput)
		}
		m.Kind = k
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Observations != nil {
		m.Observations = *in.Observations
	}
	if in.ReportURL != nil {
		m.ReportURL = strings.TrimSpace(*in.ReportURL)
	}
	if in.ScheduledDate != nil {
		scheduled, err := ParseDate(*in.ScheduledDate, now.Location())
		if err != nil {
			return nil, err
		}
		m.ScheduledDate = scheduled
	}
	completedGiven := in.CompletedDate != nil && strings.TrimSpace(*in.CompletedDate) != ""
	if completedGiven {
		done, err := ParseDate(*in.CompletedDate, now.Location())
		if err != nil {
			return nil, err
		}
		m.CompletedDate = &done
	}
	if in.Status != nil {
		st := entity.MaintenanceStatus(*in.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("estado de mantenimiento %q: %w", *in.Status, domain.ErrInvalidInput)
		}
		m.Status = st
		if st == entity.MaintenanceCompleted && !completedGiven && (prevStatus != st || m.CompletedDate == nil) {
			stamp := now
			m.CompletedDate = &stamp
		}
	}
	m.UpdatedAt = now

	var entry *entity.HistoryEntry
	if m.Status != prevStatus {
		obs := ""
		if in.Observations != nil {
			obs = *in.Observations
		}
		entry = &entity.HistoryEntry{
			ID:            uuid.New().String(),
			EquipmentID:   m.EquipmentID,
			MaintenanceID: m.ID,
			TechnicianID:  actor.UserID,
			Date:          now,
			Observations:  StatusChangeObservation(m.Status, obs),
			CreatedAt:     now,
		}
	}

	err = uc.tx.RunMaintenance(ctx, func(maintRepo repository.MaintenanceRepository, historyRepo repository.HistoryRepository) error {
		if err := maintRepo.Update(ctx, m); err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return historyRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar mantenimiento: %w", err)
	}
	if entry != nil {
		metrics.IncHistoryWrite("status_change")
	}

	d.Maintenance = m
	out := ToMaintenanceResponse(*d, now)
	return &out, nil
}

// Delete elimina una tarea. Solo ADMIN.
func (uc *MaintenanceUseCase) Delete(ctx context.Context, actor visibility.Actor, id string) error {
	if actor.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// visibleDetail carga la tarea si existe y el actor puede verla. Una tarea
// invisible se reporta como inexistente.
func (uc *MaintenanceUseCase) visibleDetail(ctx context.Context, actor visibility.Actor, id string) (*repository.MaintenanceDetail, error) {
	scope := visibility.Scope(actor, visibility.KindMaintenanceTask)
	if scope.Empty() {
		return nil, domain.ErrNotFound
	}
	d, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !scope.MatchTask(d.Maintenance, d.Equipment) {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ScheduledObservation texto del historial al programar un mantenimiento.
func ScheduledObservation(kind entity.MaintenanceKind, description string) string {
	return fmt.Sprintf("Mantenimiento %s programado: %s", cases.Lower(language.Spanish).String(string(kind)), description)
}

// StatusChangeObservation texto del historial al cambiar de estado.
func StatusChangeObservation(status entity.MaintenanceStatus, observations string) string {
	if observations == "" {
		return "Estado cambiado a: " + string(status)
	}
	return "Estado cambiado a: " + string(status) + ". " + observations
}
