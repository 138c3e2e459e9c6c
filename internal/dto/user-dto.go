package dto

import (
	"time"

	"medical-inventory/pkg/constants"
	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// UserDTO - профиль пользователя. Пароль наружу не отдаётся.
type UserDTO struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	Password     string         `json:"-"`
	Nombre       string         `json:"nombre"`
	Apellido     null.String    `json:"apellido"`
	Telefono     null.String    `json:"telefono"`
	Departamento null.String    `json:"departamento"`
	Cargo        null.String    `json:"cargo"`
	Rol          string         `json:"rol"`
	Estado       string         `json:"estado"`
	FechaIngreso types.NullDate `json:"fechaIngreso"`
	UltimoAcceso null.Time      `json:"ultimoAcceso"`
	Permisos     null.JSON      `json:"permisos"`
	AvatarURL    null.String    `json:"avatarUrl"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// FullName - "Имя Фамилия" для заголовков и логов.
func (u UserDTO) FullName() string {
	if u.Apellido.Valid {
		return u.Nombre + " " + u.Apellido.String
	}
	return u.Nombre
}

type CreateUserDTO struct {
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password" validate:"required,min=6,max=72"`
	Nombre       string         `json:"nombre" validate:"required,max=100"`
	Apellido     null.String    `json:"apellido" validate:"omitempty,max=100"`
	Telefono     null.String    `json:"telefono" validate:"omitempty,phone"`
	Departamento null.String    `json:"departamento"`
	Cargo        null.String    `json:"cargo"`
	Rol          string         `json:"rol" validate:"required,user_role"`
	Estado       string         `json:"estado" validate:"omitempty,user_status"`
	FechaIngreso types.NullDate `json:"fechaIngreso"`
	Permisos     null.JSON      `json:"permisos"`
	AvatarURL    null.String    `json:"avatarUrl" validate:"omitempty,url"`
}

// UpdateUserDTO - пустой пароль означает "не менять".
type UpdateUserDTO struct {
	Email             string         `json:"email" validate:"required,email"`
	Password          string         `json:"password" validate:"omitempty,min=6,max=72"`
	Nombre            string         `json:"nombre" validate:"required,max=100"`
	Apellido          null.String    `json:"apellido" validate:"omitempty,max=100"`
	Telefono          null.String    `json:"telefono" validate:"omitempty,phone"`
	Departamento      null.String    `json:"departamento"`
	Cargo             null.String    `json:"cargo"`
	Rol               string         `json:"rol" validate:"required,user_role"`
	Estado            string         `json:"estado" validate:"required,user_status"`
	FechaIngreso      types.NullDate `json:"fechaIngreso"`
	Permisos          null.JSON      `json:"permisos"`
	AvatarURL         null.String    `json:"avatarUrl" validate:"omitempty,url"`
	ExpectedUpdatedAt null.Time      `json:"expectedUpdatedAt"`
}

func (d *CreateUserDTO) Normalize() {
	d.Apellido = BlankToNull(d.Apellido)
	d.Telefono = BlankToNull(d.Telefono)
	d.Departamento = BlankToNull(d.Departamento)
	d.Cargo = BlankToNull(d.Cargo)
	d.AvatarURL = BlankToNull(d.AvatarURL)
	if d.Estado == "" {
		d.Estado = constants.UserActive
	}
}

func (d *UpdateUserDTO) Normalize() {
	d.Apellido = BlankToNull(d.Apellido)
	d.Telefono = BlankToNull(d.Telefono)
	d.Departamento = BlankToNull(d.Departamento)
	d.Cargo = BlankToNull(d.Cargo)
	d.AvatarURL = BlankToNull(d.AvatarURL)
}

// ToRecord: passwordHash уже посчитан сервисом.
func (d CreateUserDTO) ToRecord(passwordHash string) UserDTO {
	return UserDTO{
		Email:        d.Email,
		Password:     passwordHash,
		Nombre:       d.Nombre,
		Apellido:     d.Apellido,
		Telefono:     d.Telefono,
		Departamento: d.Departamento,
		Cargo:        d.Cargo,
		Rol:          d.Rol,
		Estado:       d.Estado,
		FechaIngreso: d.FechaIngreso,
		Permisos:     d.Permisos,
		AvatarURL:    d.AvatarURL,
	}
}

// ApplyTo переносит изменения формы на существующий профиль.
func (d UpdateUserDTO) ApplyTo(current UserDTO, passwordHash string) UserDTO {
	current.Email = d.Email
	current.Nombre = d.Nombre
	current.Apellido = d.Apellido
	current.Telefono = d.Telefono
	current.Departamento = d.Departamento
	current.Cargo = d.Cargo
	current.Rol = d.Rol
	current.Estado = d.Estado
	current.FechaIngreso = d.FechaIngreso
	current.Permisos = d.Permisos
	current.AvatarURL = d.AvatarURL
	if passwordHash != "" {
		current.Password = passwordHash
	}
	return current
}
