// Package visibility traduce la identidad de quien consulta (Actor) en el filtro
// de registros que puede observar. Es el único lugar donde se decide la
// visibilidad por rol; endpoints, dashboard y alertas lo reutilizan.
package visibility

import "github.com/jhoicas/MantenPro-api/internal/domain/entity"

// Actor identidad autenticada que hace la petición. La provee el middleware de
// auth; el núcleo nunca autentica, solo filtra.
type Actor struct {
	Role      entity.Role
	UserID    string
	CompanyID string // vacío = sin empresa
}

// RecordKind tipo de registro sobre el que se aplica el filtro.
type RecordKind string

const (
	KindEquipment       RecordKind = "equipment"
	KindMaintenanceTask RecordKind = "maintenance_task"
	KindHistoryEntry    RecordKind = "history_entry"
)

// Mode forma de la restricción. El valor cero es ModeNone: un Filter sin
// inicializar no deja ver nada.
type Mode int

const (
	ModeNone       Mode = iota // conjunto vacío
	ModeAll                    // sin restricción
	ModeCompany                // registros cuyo equipo pertenece a CompanyID
	ModeTechnician             // tareas/historial de TechnicianID; equipos alcanzables por sus tareas
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeCompany:
		return "company"
	case ModeTechnician:
		return "technician"
	default:
		return "none"
	}
}

// Filter expresión de visibilidad. Cada fuente de registros la compila a su
// propio lenguaje (SQL en postgres, predicados Match* en memoria).
type Filter struct {
	Kind         RecordKind
	Mode         Mode
	CompanyID    string
	TechnicianID string
}

// Scope construye el filtro de visibilidad para un actor y un tipo de registro.
//
//   - ADMIN: sin restricción.
//   - CLIENTE: registros de su empresa; sin empresa → vacío.
//   - TECNICO: sus tareas e historial; equipos alcanzados por sus tareas.
//   - Rol desconocido o tipo de registro desconocido → vacío.
func Scope(actor Actor, kind RecordKind) Filter {
	f := Filter{Kind: kind, Mode: ModeNone}
	switch kind {
	case KindEquipment, KindMaintenanceTask, KindHistoryEntry:
	default:
		return f
	}

	switch actor.Role {
	case entity.RoleAdmin:
		f.Mode = ModeAll
	case entity.RoleCliente:
		if actor.CompanyID != "" {
			f.Mode = ModeCompany
			f.CompanyID = actor.CompanyID
		}
	case entity.RoleTecnico:
		if actor.UserID != "" {
			f.Mode = ModeTechnician
			f.TechnicianID = actor.UserID
		}
	}
	return f
}

// Empty informa si el filtro no deja pasar ningún registro.
func (f Filter) Empty() bool { return f.Mode == ModeNone }

// Unrestricted informa si el filtro deja pasar todo.
func (f Filter) Unrestricted() bool { return f.Mode == ModeAll }

// MatchEquipment evalúa el filtro sobre un equipo. reachable es el conjunto de
// equipos alcanzables por las tareas del técnico (ver ReachableEquipment); solo
// se consulta en ModeTechnician.
func (f Filter) MatchEquipment(eq *entity.Equipment, reachable map[string]struct{}) bool {
	if eq == nil {
		return false
	}
	switch f.Mode {
	case ModeAll:
		return true
	case ModeCompany:
		return eq.CompanyID == f.CompanyID
	case ModeTechnician:
		_, ok := reachable[eq.ID]
		return ok
	default:
		return false
	}
}

// MatchTask evalúa el filtro sobre una tarea. eq es el equipo de la tarea; se
// necesita para la restricción por empresa.
func (f Filter) MatchTask(t *entity.Maintenance, eq *entity.Equipment) bool {
	if t == nil {
		return false
	}
	switch f.Mode {
	case ModeAll:
		return true
	case ModeCompany:
		return eq != nil && eq.ID == t.EquipmentID && eq.CompanyID == f.CompanyID
	case ModeTechnician:
		return t.TechnicianID == f.TechnicianID
	default:
		return false
	}
}

// MatchHistory evalúa el filtro sobre una entrada de historial.
func (f Filter) MatchHistory(h *entity.HistoryEntry, eq *entity.Equipment) bool {
	if h == nil {
		return false
	}
	switch f.Mode {
	case ModeAll:
		return true
	case ModeCompany:
		return eq != nil && eq.ID == h.EquipmentID && eq.CompanyID == f.CompanyID
	case ModeTechnician:
		return h.TechnicianID == f.TechnicianID
	default:
		return false
	}
}

// ReachableEquipment devuelve los IDs distintos de equipo de las tareas asignadas al técnico.
func ReachableEquipment(tasks []*entity.Maintenance, technicianID string) map[string]struct{} {
	out := make(map[string]struct{})
	if technicianID == "" {
		return out
	}
	for _, t := range tasks {
		if t != nil && t.TechnicianID == technicianID {
			out[t.EquipmentID] = struct{}{}
		}
	}
	return out
}
