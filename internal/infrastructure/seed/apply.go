package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MantenPro-api/internal/application/usecase"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
	"github.com/jhoicas/MantenPro-api/pkg/logger"
	"github.com/jhoicas/MantenPro-api/pkg/nit"
)

// namespace de los IDs deterministas del fixture: la misma key produce el mismo
// ID en cada ejecución, lo que hace Apply idempotente.
var namespace = uuid.MustParse("6f1c3a52-8e0d-4b7a-9f45-2d7c1e0b9a13")

// DefaultPassword se usa cuando el fixture no declara contraseña.
const DefaultPassword = "mantenpro123"

// Target repositorios donde se siembra (memoria o PostgreSQL).
type Target struct {
	Companies    repository.CompanyRepository
	Users        repository.UserRepository
	Equipment    repository.EquipmentRepository
	Maintenances repository.MaintenanceRepository
	History      repository.HistoryRepository
}

// Result resumen de una siembra.
type Result struct {
	Created int
	Skipped int
	Users   []*entity.User // todos los usuarios del fixture, existentes o nuevos
}

// ID deriva el ID estable de un registro del fixture.
func ID(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}

// Apply inserta el fixture. Los registros cuyo ID ya existe se omiten. Las
// fechas relativas se resuelven contra el inicio del día de now (en su zona).
func Apply(ctx context.Context, fx *Fixture, t Target, now time.Time, log *logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	res := &Result{}
	today := usecase.StartOfDay(now)

	for _, c := range fx.Companies {
		id := ID("company", c.Key)
		existing, err := t.Companies.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			continue
		}
		company := &entity.Company{
			ID: id, Name: c.Name, NIT: nit.Normalize(c.NIT), Contact: c.Contact, Phone: c.Phone,
			Email: c.Email, Address: c.Address, CreatedAt: now, UpdatedAt: now,
		}
		if err := t.Companies.Create(ctx, company); err != nil {
			return nil, fmt.Errorf("empresa %q: %w", c.Key, err)
		}
		res.Created++
	}

	for _, u := range fx.Users {
		id := ID("user", u.Key)
		existing, err := t.Users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			res.Users = append(res.Users, existing)
			continue
		}
		password := u.Password
		if password == "" {
			password = DefaultPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		role, _ := entity.NormalizeRole(u.Role)
		user := &entity.User{
			ID:           id,
			Email:        strings.ToLower(strings.TrimSpace(u.Email)),
			PasswordHash: string(hash),
			Name:         u.Name,
			Role:         role,
			Active:       u.Active == nil || *u.Active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if u.Company != "" {
			user.CompanyID = ID("company", u.Company)
		}
		if err := t.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("usuario %q: %w", u.Key, err)
		}
		res.Created++
		res.Users = append(res.Users, user)
	}

	for _, e := range fx.Equipment {
		id := ID("equipment", e.Key)
		existing, err := t.Equipment.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			continue
		}
		status := entity.EquipmentStatus(e.Status)
		if status == "" {
			status = entity.EquipmentActive
		}
		eq := &entity.Equipment{
			ID: id, CompanyID: ID("company", e.Company), Type: e.Type, Brand: e.Brand, Model: e.Model,
			Serial: e.Serial, Status: status, Location: e.Location, CreatedAt: now, UpdatedAt: now,
		}
		if err := t.Equipment.Create(ctx, eq); err != nil {
			return nil, fmt.Errorf("equipo %q: %w", e.Key, err)
		}
		res.Created++
	}

	for _, m := range fx.Maintenances {
		id := ID("maintenance", m.Key)
		existing, err := t.Maintenances.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			continue
		}
		task := &entity.Maintenance{
			ID:            id,
			EquipmentID:   ID("equipment", m.Equipment),
			TechnicianID:  ID("user", m.Technician),
			Kind:          entity.MaintenanceKind(m.Kind),
			Status:        entity.MaintenanceStatus(m.Status),
			ScheduledDate: today.AddDate(0, 0, m.InDays).Add(9 * time.Hour),
			Description:   m.Description,
			Observations:  m.Observations,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if task.Status == "" {
			task.Status = entity.MaintenanceScheduled
		}
		if m.CompletedInDays != nil {
			done := today.AddDate(0, 0, *m.CompletedInDays).Add(15 * time.Hour)
			task.CompletedDate = &done
		}
		if err := t.Maintenances.Create(ctx, task); err != nil {
			return nil, fmt.Errorf("tarea %q: %w", m.Key, err)
		}
		entry := &entity.HistoryEntry{
			ID:            ID("history", m.Key),
			EquipmentID:   task.EquipmentID,
			MaintenanceID: task.ID,
			TechnicianID:  task.TechnicianID,
			Date:          now,
			Observations:  usecase.ScheduledObservation(task.Kind, task.Description),
			CreatedAt:     now,
		}
		if err := t.History.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("historial de %q: %w", m.Key, err)
		}
		res.Created++
	}

	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("seed aplicado")
	return res, nil
}
