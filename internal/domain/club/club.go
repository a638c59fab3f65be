package club

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Plan represents the subscription plan of a club
type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basico"
	PlanPro   Plan = "pro"
)

// IsValid checks if the plan is known
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro:
		return true
	}
	return false
}

// String returns the string representation
func (p Plan) String() string {
	return string(p)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Club is the tenant root. Every other club-owned record carries its ID.
type Club struct {
	shared.BaseAggregateRoot
	Name      string
	Slug      string
	Active    bool
	Plan      Plan
	LogoURL   string
	CreatedBy *uuid.UUID
}

// NewClub creates an active club on the free plan
func NewClub(name, slug string, createdBy *uuid.UUID) (*Club, error) {
	if err := validateClubName(name); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	return &Club{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		Active:            true,
		Plan:              PlanFree,
		CreatedBy:         createdBy,
	}, nil
}

// Update changes the descriptive fields of the club
func (c *Club) Update(name, logoURL string, plan Plan) error {
	if err := validateClubName(name); err != nil {
		return err
	}
	if plan == "" {
		plan = c.Plan
	}
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "El plan debe ser free, basico o pro")
	}

	c.Name = strings.TrimSpace(name)
	c.LogoURL = strings.TrimSpace(logoURL)
	c.Plan = plan
	c.IncrementVersion()
	return nil
}

// ChangeSlug replaces the public slug. Uniqueness is checked by the caller.
func (c *Club) ChangeSlug(slug string) error {
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	c.Slug = slug
	c.IncrementVersion()
	return nil
}

// Activate enables the club
func (c *Club) Activate() {
	if c.Active {
		return
	}
	c.Active = true
	c.IncrementVersion()
}

// Deactivate disables the club; its users can no longer log in and its
// public page stops resolving.
func (c *Club) Deactivate() {
	if !c.Active {
		return
	}
	c.Active = false
	c.IncrementVersion()
}

// ValidateSlug checks the public URL slug format
func ValidateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "El slug es obligatorio")
	}
	if len(slug) > 60 {
		return shared.NewDomainError("INVALID_SLUG", "El slug no puede superar 60 caracteres")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "El slug solo puede contener minúsculas, dígitos y guiones")
	}
	return nil
}

// ToSlug derives a slug candidate from a display name, e.g.
// "Club Atlético Peñarol" becomes "club-atletico-penarol".
func ToSlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func validateClubName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "El nombre del club es obligatorio")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "El nombre del club no puede superar 200 caracteres")
	}
	return nil
}
