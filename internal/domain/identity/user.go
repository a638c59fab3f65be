package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the administrative role of a club user
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTreasurer Role = "tesorero"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTreasurer
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

const bcryptCost = bcrypt.DefaultCost

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an administrative account. Club users always carry a ClubID;
// super-admins carry none and are not scoped to any club.
type User struct {
	shared.BaseAggregateRoot
	ClubID       *uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	SuperAdmin   bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user of a club
func NewUser(clubID uuid.UUID, email, password, name string, role Role) (*User, error) {
	if clubID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLUB", "El club es obligatorio")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "El rol debe ser admin o tesorero")
	}
	u, err := newUser(email, password, name)
	if err != nil {
		return nil, err
	}
	u.ClubID = &clubID
	u.Role = role
	return u, nil
}

// NewSuperAdmin creates a platform administrator not bound to any club
func NewSuperAdmin(email, password, name string) (*User, error) {
	u, err := newUser(email, password, name)
	if err != nil {
		return nil, err
	}
	u.Role = RoleAdmin
	u.SuperAdmin = true
	return u, nil
}

func newUser(email, password, name string) (*User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// UpdateProfile changes the name and email of the user
func (u *User) UpdateProfile(name, email string) error {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.Email = email
	u.IncrementVersion()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangeRole assigns a new role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "El rol debe ser admin o tesorero")
	}
	if u.Role == role {
		return nil
	}
	u.Role = role
	u.IncrementVersion()
	return nil
}

// Activate enables the account
func (u *User) Activate() {
	if u.Active {
		return
	}
	u.Active = true
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "El usuario ya está inactivo")
	}
	u.Active = false
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsActiveAdmin reports whether the user counts toward the club's admins
func (u *User) IsActiveAdmin() bool {
	return u.Active && u.Role == RoleAdmin
}

// BelongsTo reports whether the user is scoped to clubID
func (u *User) BelongsTo(clubID uuid.UUID) bool {
	return u.ClubID != nil && *u.ClubID == clubID
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "El email es obligatorio")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "El email no puede superar 200 caracteres")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Formato de email inválido")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "El nombre es obligatorio")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "El nombre no puede superar 200 caracteres")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "La contraseña debe tener al menos 6 caracteres")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "La contraseña no puede superar 72 caracteres")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "No se pudo procesar la contraseña")
	}
	return string(hash), nil
}
