package dto

import "time"

// AlertDTO alerta derivada. Las claves JSON conservan el contrato en español que
// consume el panel de alertas.
type AlertDTO struct {
	ID              string    `json:"id"`
	Tipo            string    `json:"tipo"`      // ATRASADO | PROXIMO | CRITICO
	Prioridad       string    `json:"prioridad"` // ALTA | MEDIA | BAJA
	Titulo          string    `json:"titulo"`
	Mensaje         string    `json:"mensaje"`
	MantenimientoID string    `json:"mantenimientoId,omitempty"`
	EquipoID        string    `json:"equipoId"`
	Fecha           time.Time `json:"fecha"`
	Dias            int       `json:"dias"`
}

// AlertCountersDTO contadores por categoría. Total == len(alertas).
type AlertCountersDTO struct {
	Atrasados int `json:"atrasados"`
	Proximos  int `json:"proximos"`
	Criticos  int `json:"criticos"`
	Total     int `json:"total"`
}

// AlertSkipDTO registro que no pudo clasificarse.
type AlertSkipDTO struct {
	RegistroID string `json:"registroId"`
	Motivo     string `json:"motivo"`
}

// AlertListResponse respuesta de GET /api/alerts.
type AlertListResponse struct {
	Alertas    []AlertDTO       `json:"alertas"`
	Contadores AlertCountersDTO `json:"contadores"`
	Errores    []AlertSkipDTO   `json:"errores,omitempty"`
}

// RowAlertDTO resaltado de una fila del listado de mantenimientos.
type RowAlertDTO struct {
	Tipo string `json:"tipo"`
	Dias int    `json:"dias"`
}
