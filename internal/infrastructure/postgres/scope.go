package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/MantenPro-api/internal/domain/visibility"
)

// psql builder con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	sqlTrue  = sq.Expr("TRUE")
	sqlFalse = sq.Expr("FALSE")
)

// equipmentScope compila el filtro de visibilidad sobre equipment (alias e).
// Un técnico alcanza los equipos de sus propias tareas.
func equipmentScope(f visibility.Filter) sq.Sqlizer {
	switch f.Mode {
	case visibility.ModeAll:
		return sqlTrue
	case visibility.ModeCompany:
		return sq.Eq{"e.company_id": f.CompanyID}
	case visibility.ModeTechnician:
		return sq.Expr("e.id IN (SELECT DISTINCT equipment_id FROM maintenances WHERE technician_id = ?)", f.TechnicianID)
	default:
		return sqlFalse
	}
}

// taskScope compila el filtro sobre maintenances (alias m, con equipment e).
func taskScope(f visibility.Filter) sq.Sqlizer {
	switch f.Mode {
	case visibility.ModeAll:
		return sqlTrue
	case visibility.ModeCompany:
		return sq.Eq{"e.company_id": f.CompanyID}
	case visibility.ModeTechnician:
		return sq.Eq{"m.technician_id": f.TechnicianID}
	default:
		return sqlFalse
	}
}

// historyScope compila el filtro sobre history (alias h, con equipment e).
func historyScope(f visibility.Filter) sq.Sqlizer {
	switch f.Mode {
	case visibility.ModeAll:
		return sqlTrue
	case visibility.ModeCompany:
		return sq.Eq{"e.company_id": f.CompanyID}
	case visibility.ModeTechnician:
		return sq.Eq{"h.technician_id": f.TechnicianID}
	default:
		return sqlFalse
	}
}

// allTerms cada término de search debe aparecer (ILIKE) en alguna de las columnas.
func allTerms(search string, columns ...string) sq.Sqlizer {
	and := sq.And{}
	for _, term := range strings.Fields(search) {
		or := sq.Or{}
		for _, col := range columns {
			or = append(or, sq.ILike{col: likeTerm(term)})
		}
		and = append(and, or)
	}
	return and
}
