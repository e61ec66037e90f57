package models

import (
	"encoding/json"
	"strconv"
)

// Role is the access type of a user.
type Role string

const (
	RoleProfesor      Role = "PROFESOR"
	RoleEstudiante    Role = "ESTUDIANTE"
	RoleAdministrador Role = "ADMINISTRADOR"
)

// User is the logged-in user as kept in the session marker.
type User struct {
	ProfesorID string `json:"profesor_id,omitempty"`
	ID         string `json:"id"`
	Username   string `json:"username"`
	Nombre     string `json:"nombre"`
	Rol        Role   `json:"rol"`
}

// Marker serializes the user for the credential store.
func (u User) Marker() ([]byte, error) {
	return json.Marshal(u)
}

// UserFromMarker is the inverse of Marker. A nil or empty marker yields nil.
func UserFromMarker(b []byte) (*User, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int        `json:"expiresIn"`
	User         *LoginUser `json:"user"`
}

type LoginUser struct {
	UsuarioID  int    `json:"usuario_id"`
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
	RolBase    string `json:"rol_base"`
	ProfesorID *int   `json:"profesor_id"`
	TipoAcceso string `json:"tipo_acceso"`
}

// User converts the login payload into the session user. The email doubles
// as username and tipo_acceso decides the role.
func (l LoginUser) User() User {
	u := User{
		ID:       strconv.Itoa(l.UsuarioID),
		Username: l.Email,
		Nombre:   l.Nombre,
		Rol:      Role(l.TipoAcceso),
	}
	if l.ProfesorID != nil && *l.ProfesorID != 0 {
		u.ProfesorID = strconv.Itoa(*l.ProfesorID)
	}
	return u
}
