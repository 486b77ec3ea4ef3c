// Package seed carga datos de demostración desde un fixture YAML. Las fechas de
// las tareas se expresan en días relativos a "hoy", así el demo siempre muestra
// tareas atrasadas, próximas y completadas sin importar cuándo se ejecute.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/pkg/nit"
)

//go:embed demo.yaml
var demoYAML []byte

// Fixture conjunto de registros a sembrar. Las referencias entre registros usan Key.
type Fixture struct {
	Companies    []Company     `yaml:"companies"`
	Users        []User        `yaml:"users"`
	Equipment    []Equipment   `yaml:"equipment"`
	Maintenances []Maintenance `yaml:"maintenances"`
}

type Company struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	NIT     string `yaml:"nit"`
	Contact string `yaml:"contact"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
}

type User struct {
	Key      string `yaml:"key"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Company  string `yaml:"company"` // key de la empresa; requerido para CLIENTE
	Password string `yaml:"password"`
	Active   *bool  `yaml:"active"` // nil = activo
}

type Equipment struct {
	Key      string `yaml:"key"`
	Company  string `yaml:"company"`
	Type     string `yaml:"type"`
	Brand    string `yaml:"brand"`
	Model    string `yaml:"model"`
	Serial   string `yaml:"serial"`
	Status   string `yaml:"status"`
	Location string `yaml:"location"`
}

// Maintenance tarea con fechas relativas: InDays negativo = en el pasado.
type Maintenance struct {
	Key             string `yaml:"key"`
	Equipment       string `yaml:"equipment"`
	Technician      string `yaml:"technician"` // key de un usuario TECNICO
	Kind            string `yaml:"kind"`
	Status          string `yaml:"status"`
	InDays          int    `yaml:"in_days"`
	CompletedInDays *int   `yaml:"completed_in_days"`
	Description     string `yaml:"description"`
	Observations    string `yaml:"observations"`
}

// Demo fixture embebido en el binario.
func Demo() (*Fixture, error) {
	return Load(bytes.NewReader(demoYAML))
}

// LoadFile lee y valida un fixture desde disco.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir fixture: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodifica un fixture. Campos desconocidos son error.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decodificar fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate revisa claves únicas, referencias y valores enumerados.
func (fx *Fixture) Validate() error {
	companies := make(map[string]bool)
	for _, c := range fx.Companies {
		if err := uniqueKey(companies, "empresa", c.Key); err != nil {
			return err
		}
		if c.Name == "" || c.NIT == "" {
			return fmt.Errorf("empresa %q: name y nit son requeridos", c.Key)
		}
		if err := nit.Validate(nit.Normalize(c.NIT)); err != nil {
			return fmt.Errorf("empresa %q: %w", c.Key, err)
		}
	}

	users := make(map[string]bool)
	technicians := make(map[string]bool)
	for _, u := range fx.Users {
		if err := uniqueKey(users, "usuario", u.Key); err != nil {
			return err
		}
		role, ok := entity.NormalizeRole(u.Role)
		if !ok {
			return fmt.Errorf("usuario %q: rol %q desconocido", u.Key, u.Role)
		}
		if u.Email == "" {
			return fmt.Errorf("usuario %q: email es requerido", u.Key)
		}
		if role == entity.RoleCliente && u.Company == "" {
			return fmt.Errorf("usuario %q: un CLIENTE requiere empresa", u.Key)
		}
		if u.Company != "" && !companies[u.Company] {
			return fmt.Errorf("usuario %q: empresa %q no declarada", u.Key, u.Company)
		}
		if role == entity.RoleTecnico {
			technicians[u.Key] = true
		}
	}

	equipment := make(map[string]bool)
	for _, e := range fx.Equipment {
		if err := uniqueKey(equipment, "equipo", e.Key); err != nil {
			return err
		}
		if !companies[e.Company] {
			return fmt.Errorf("equipo %q: empresa %q no declarada", e.Key, e.Company)
		}
		if e.Type == "" || e.Serial == "" {
			return fmt.Errorf("equipo %q: type y serial son requeridos", e.Key)
		}
		if e.Status != "" && !entity.EquipmentStatus(e.Status).Valid() {
			return fmt.Errorf("equipo %q: estado %q desconocido", e.Key, e.Status)
		}
	}

	tasks := make(map[string]bool)
	for _, m := range fx.Maintenances {
		if err := uniqueKey(tasks, "tarea", m.Key); err != nil {
			return err
		}
		if !equipment[m.Equipment] {
			return fmt.Errorf("tarea %q: equipo %q no declarado", m.Key, m.Equipment)
		}
		if !technicians[m.Technician] {
			return fmt.Errorf("tarea %q: %q no es un técnico declarado", m.Key, m.Technician)
		}
		if !entity.MaintenanceKind(m.Kind).Valid() {
			return fmt.Errorf("tarea %q: tipo %q desconocido", m.Key, m.Kind)
		}
		if m.Status != "" && !entity.MaintenanceStatus(m.Status).Valid() {
			return fmt.Errorf("tarea %q: estado %q desconocido", m.Key, m.Status)
		}
	}
	return nil
}

func uniqueKey(seen map[string]bool, what, key string) error {
	if key == "" {
		return fmt.Errorf("%s sin key", what)
	}
	if seen[key] {
		return fmt.Errorf("%s %q duplicado", what, key)
	}
	seen[key] = true
	return nil
}
