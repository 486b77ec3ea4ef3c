package usecase

import (
	"time"

	"github.com/jhoicas/MantenPro-api/internal/application/dto"
	"github.com/jhoicas/MantenPro-api/internal/domain/alert"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/internal/domain/repository"
)

func toEquipmentResponse(e *entity.Equipment, companyName string) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		CompanyName: companyName,
		Type:        e.Type,
		Brand:       e.Brand,
		Model:       e.Model,
		Serial:      e.Serial,
		Status:      string(e.Status),
		StatusLabel: e.Status.Label(),
		Location:    e.Location,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEquipmentSummary(e *entity.Equipment) *dto.EquipmentSummary {
	if e == nil {
		return nil
	}
	return &dto.EquipmentSummary{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		Type:      e.Type,
		Brand:     e.Brand,
		Model:     e.Model,
		Serial:    e.Serial,
		Status:    string(e.Status),
		Location:  e.Location,
	}
}

// ToMaintenanceResponse proyecta una tarea y la anota con su alerta a la fecha now.
// Usa alert.Status, la misma regla que el listado de alertas.
func ToMaintenanceResponse(d repository.MaintenanceDetail, now time.Time) dto.MaintenanceResponse {
	m := d.Maintenance
	out := dto.MaintenanceResponse{
		ID:            m.ID,
		EquipmentID:   m.EquipmentID,
		TechnicianID:  m.TechnicianID,
		Kind:          string(m.Kind),
		Status:        string(m.Status),
		ScheduledDate: m.ScheduledDate,
		CompletedDate: m.CompletedDate,
		Description:   m.Description,
		Observations:  m.Observations,
		ReportURL:     m.ReportURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Equipment:     toEquipmentSummary(d.Equipment),
		CompanyName:   d.CompanyName,
	}
	if d.TechnicianName != "" || d.TechnicianEmail != "" {
		out.Technician = &dto.TechnicianSummary{ID: m.TechnicianID, Name: d.TechnicianName, Email: d.TechnicianEmail}
	}
	// sin fecha programada la fila queda sin resaltar; el listado de alertas la reporta
	if st, err := alert.Status(now, m); err == nil && st.Category != "" {
		out.Alerta = &dto.RowAlertDTO{Tipo: string(st.Category), Dias: st.Days}
	}
	return out
}

func toHistoryResponse(d repository.HistoryDetail) dto.HistoryResponse {
	h := d.Entry
	return dto.HistoryResponse{
		ID:                h.ID,
		EquipmentID:       h.EquipmentID,
		MaintenanceID:     h.MaintenanceID,
		TechnicianID:      h.TechnicianID,
		TechnicianName:    d.TechnicianName,
		Date:              h.Date,
		Observations:      h.Observations,
		Equipment:         toEquipmentSummary(d.Equipment),
		CompanyName:       d.CompanyName,
		MaintenanceKind:   string(d.MaintenanceKind),
		MaintenanceStatus: string(d.MaintenanceStatus),
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		NIT:       c.NIT,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
