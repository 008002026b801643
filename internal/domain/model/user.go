package model

import (
	"github.com/shopspring/decimal"
)

// RoleAdmin is the role name granting order administration.
const RoleAdmin = "ADMIN"

// UserProfile is the customer profile held by the shop API.
type UserProfile struct {
	ID                        int64            `json:"id"`
	Username                  string           `json:"username"`
	Email                     string           `json:"email"`
	NombreCompleto            string           `json:"nombreCompleto,omitempty"`
	Role                      string           `json:"role,omitempty"`
	ClienteIDOntologia        string           `json:"clienteIdOntologia,omitempty"`
	Telefono                  string           `json:"telefono,omitempty"`
	Direccion                 string           `json:"direccion,omitempty"`
	MarcaPreferida            string           `json:"marcaPreferida,omitempty"`
	SistemaOperativoPreferido string           `json:"sistemaOperativoPreferido,omitempty"`
	RangoPrecioMin            *decimal.Decimal `json:"rangoPrecioMin,omitempty" swaggertype:"number"`
	RangoPrecioMax            *decimal.Decimal `json:"rangoPrecioMax,omitempty" swaggertype:"number"`
	FechaRegistro             Timestamp        `json:"fechaRegistro" swaggertype:"string"`
	Activo                    bool             `json:"activo"`
}

// AuthResponse is what the shop API returns after login or registration.
type AuthResponse struct {
	Token              string `json:"token"`
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	NombreCompleto     string `json:"nombreCompleto,omitempty"`
	Role               string `json:"role,omitempty"`
	ClienteIDOntologia string `json:"clienteIdOntologia,omitempty"`
}

// BasicProfile extracts the profile fields carried by the auth response.
func (a AuthResponse) BasicProfile() UserProfile {
	return UserProfile{
		ID:                 a.ID,
		Username:           a.Username,
		Email:              a.Email,
		NombreCompleto:     a.NombreCompleto,
		Role:               a.Role,
		ClienteIDOntologia: a.ClienteIDOntologia,
		Activo:             true,
	}
}

// Credentials is a username and password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration carries the sign-up form.
type Registration struct {
	Username                  string           `json:"username"`
	Email                     string           `json:"email"`
	Password                  string           `json:"password"`
	NombreCompleto            string           `json:"nombreCompleto,omitempty"`
	Telefono                  string           `json:"telefono,omitempty"`
	Direccion                 string           `json:"direccion,omitempty"`
	MarcaPreferida            string           `json:"marcaPreferida,omitempty"`
	SistemaOperativoPreferido string           `json:"sistemaOperativoPreferido,omitempty"`
	RangoPrecioMin            *decimal.Decimal `json:"rangoPrecioMin,omitempty" swaggertype:"number"`
	RangoPrecioMax            *decimal.Decimal `json:"rangoPrecioMax,omitempty" swaggertype:"number"`
}

// Session is the signed-in state kept in the local store.
type Session struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// IsAdmin reports whether the signed-in user administers orders.
func (s Session) IsAdmin() bool {
	return s.User.Role == RoleAdmin
}

// MergeProfile overlays the full profile on top of the basic one. Empty
// fields of the full profile keep the basic value.
func MergeProfile(basic, full UserProfile) UserProfile {
	merged := full
	if merged.ID == 0 {
		merged.ID = basic.ID
	}
	if merged.Username == "" {
		merged.Username = basic.Username
	}
	if merged.Email == "" {
		merged.Email = basic.Email
	}
	if merged.NombreCompleto == "" {
		merged.NombreCompleto = basic.NombreCompleto
	}
	if merged.Role == "" {
		merged.Role = basic.Role
	}
	if merged.ClienteIDOntologia == "" {
		merged.ClienteIDOntologia = basic.ClienteIDOntologia
	}
	return merged
}

// Recommendation is a personalised product selection.
type Recommendation struct {
	ClienteID            string    `json:"clienteId"`
	ClienteNombre        string    `json:"clienteNombre,omitempty"`
	Productos            []Product `json:"productos"`
	Razon                string    `json:"razon,omitempty"`
	TotalRecomendaciones int       `json:"totalRecomendaciones"`
}
