package entities

import "strings"

// Role gates every quote transition.
type Role string

const (
	RoleConsultor     Role = "consultor"
	RoleOperador      Role = "operador"
	RoleGerente       Role = "gerente"
	RoleAdministrador Role = "administrador"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleConsultor, RoleOperador, RoleGerente, RoleAdministrador:
		return true
	}
	return false
}

// IsSupervisor reports manager or administrator.
func (r Role) IsSupervisor() bool {
	return r == RoleGerente || r == RoleAdministrador
}

// CanOperate reports whether the role may take quotes from the open pool.
func (r Role) CanOperate() bool {
	return r == RoleOperador || r.IsSupervisor()
}

// CanRequest reports whether the role may open new quotes.
func (r Role) CanRequest() bool {
	return r == RoleConsultor || r.IsSupervisor()
}

// ParseRole accepts the canonical lowercase value in any case.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.IsValid()
}

// User is the caller identity resolved before every core operation.
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   Role   `json:"role" yaml:"role"`
	Active bool   `json:"active" yaml:"active"`
}

// Company is a providing company that fulfils a quoted shipment.
type Company struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	TaxID  string `json:"tax_id" yaml:"tax_id"`
	Active bool   `json:"active" yaml:"active"`
}
