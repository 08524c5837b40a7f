package entity

// Principal es la identidad resuelta del llamante: tenant, permisos y flags.
// Se construye a partir del User persistido en cada request (los permisos pueden
// cambiar entre la emisión del token y su uso).
type Principal struct {
	ID          string
	CompanyID   string // vacío para root
	Permissions []string
	IsRoot      bool
	IsCEO       bool
	Blocked     bool
}

// HasPermission indica si el principal tiene el permiso dado.
// Root y el comodín "*" pasan cualquier verificación; is_ceo por sí solo NO.
func (p *Principal) HasPermission(perm string) bool {
	if p.IsRoot {
		return true
	}
	for _, have := range p.Permissions {
		if have == "*" || have == perm {
			return true
		}
	}
	return false
}

// CanAccessCompany indica si el principal puede operar sobre recursos de la empresa dada.
func (p *Principal) CanAccessCompany(companyID string) bool {
	return p.IsRoot || p.CompanyID == companyID
}
