// Файл: internal/entities/user_entity.go
package entities

import (
	"time"

	"medical-inventory/internal/dto"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

const UserTable = "perfiles_usuarios"

var UserColumns = []string{
	"id", "email", "password", "nombre", "apellido", "telefono", "departamento", "cargo", "rol",
	"estado", "fecha_ingreso", "ultimo_acceso", "permisos", "avatar_url", "created_at", "updated_at",
}

var UserSearchColumns = []string{"nombre", "apellido", "email", "departamento"}

type User struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Email       string         `json:"email" db:"email"`
	Password    string         `json:"password,omitempty" db:"password"`
	Name        string         `json:"nombre" db:"nombre"`
	LastName    null.String    `json:"apellido" db:"apellido"`
	Phone       null.String    `json:"telefono" db:"telefono"`
	Department  null.String    `json:"departamento" db:"departamento"`
	Position    null.String    `json:"cargo" db:"cargo"`
	Role        string         `json:"rol" db:"rol"`
	Status      string         `json:"estado" db:"estado"`
	JoinedAt    types.NullDate `json:"fecha_ingreso" db:"fecha_ingreso"`
	LastAccess  null.Time      `json:"ultimo_acceso" db:"ultimo_acceso"`
	Permissions null.JSON      `json:"permisos" db:"permisos"`
	AvatarURL   null.String    `json:"avatar_url" db:"avatar_url"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Values не содержит ultimo_acceso: его меняет только вход в систему.
func (u User) Values() map[string]interface{} {
	return map[string]interface{}{
		"email":         u.Email,
		"password":      u.Password,
		"nombre":        u.Name,
		"apellido":      u.LastName,
		"telefono":      u.Phone,
		"departamento":  u.Department,
		"cargo":         u.Position,
		"rol":           u.Role,
		"estado":        u.Status,
		"fecha_ingreso": u.JoinedAt,
		"permisos":      u.Permissions,
		"avatar_url":    u.AvatarURL,
	}
}

func (u User) ToDTO() dto.UserDTO {
	return dto.UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		Nombre:       u.Name,
		Apellido:     u.LastName,
		Telefono:     u.Phone,
		Departamento: u.Department,
		Cargo:        u.Position,
		Rol:          u.Role,
		Estado:       u.Status,
		FechaIngreso: u.JoinedAt,
		UltimoAcceso: u.LastAccess,
		Permisos:     u.Permissions,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func UserFromDTO(d dto.UserDTO) User {
	return User{
		ID:          d.ID,
		Email:       d.Email,
		Password:    d.Password,
		Name:        d.Nombre,
		LastName:    d.Apellido,
		Phone:       d.Telefono,
		Department:  d.Departamento,
		Position:    d.Cargo,
		Role:        d.Rol,
		Status:      d.Estado,
		JoinedAt:    d.FechaIngreso,
		LastAccess:  d.UltimoAcceso,
		Permissions: d.Permisos,
		AvatarURL:   d.AvatarURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
