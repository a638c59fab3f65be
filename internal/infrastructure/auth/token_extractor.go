package auth

import (
	"context"
	"net/http"
	"sort"
	"strings"
)

// Cookie names used for session tokens
const (
	CookieAdmin           = "token_admin"
	CookieAdminClubPrefix = "token_admin_"
	CookieSuperAdmin      = "token_superadmin"
	CookieLegacy          = "token"

	// HeaderClubID selects the club when a browser holds sessions for several clubs
	HeaderClubID = "X-Club-ID"
)

// ClubCookieName returns the per-club admin cookie name
func ClubCookieName(clubID string) string {
	return CookieAdminClubPrefix + clubID
}

// TokenExtractor finds the first usable token on a request
type TokenExtractor struct {
	jwt       *JWTService
	blacklist TokenBlacklist
}

// NewTokenExtractor creates a token extractor. blacklist may be nil.
func NewTokenExtractor(jwtService *JWTService, blacklist TokenBlacklist) *TokenExtractor {
	return &TokenExtractor{jwt: jwtService, blacklist: blacklist}
}

// Extract walks the candidate tokens in precedence order and returns the
// first one that validates and is not revoked. Unusable candidates are
// skipped rather than failing the request.
func (e *TokenExtractor) Extract(ctx context.Context, r *http.Request) (*Claims, string, bool) {
	for _, candidate := range Candidates(r) {
		claims, err := e.jwt.ValidateToken(candidate)
		if err != nil {
			continue
		}
		if e.isRevoked(ctx, claims) {
			continue
		}
		return claims, candidate, true
	}
	return nil, "", false
}

func (e *TokenExtractor) isRevoked(ctx context.Context, claims *Claims) bool {
	if e.blacklist == nil {
		return false
	}
	if claims.ID != "" {
		if revoked, err := e.blacklist.IsBlacklisted(ctx, claims.ID); err != nil || revoked {
			return true
		}
	}
	invalidated, err := e.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	return err != nil || invalidated
}

// Candidates returns the raw tokens present on the request, in order:
// Authorization bearer header, token_admin, token_admin_<clubId> (the cookie
// matching X-Club-ID first), token_superadmin, token.
func Candidates(r *http.Request) []string {
	var out []string

	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			out = append(out, strings.TrimSpace(parts[1]))
		}
	}

	if v := cookieValue(r, CookieAdmin); v != "" {
		out = append(out, v)
	}

	out = append(out, clubCookies(r)...)

	if v := cookieValue(r, CookieSuperAdmin); v != "" {
		out = append(out, v)
	}
	if v := cookieValue(r, CookieLegacy); v != "" {
		out = append(out, v)
	}
	return out
}

func clubCookies(r *http.Request) []string {
	preferred := ""
	if clubID := strings.TrimSpace(r.Header.Get(HeaderClubID)); clubID != "" {
		preferred = ClubCookieName(clubID)
	}

	var named []*http.Cookie
	for _, c := range r.Cookies() {
		if strings.HasPrefix(c.Name, CookieAdminClubPrefix) && c.Value != "" {
			named = append(named, c)
		}
	}
	sort.SliceStable(named, func(i, j int) bool {
		if (named[i].Name == preferred) != (named[j].Name == preferred) {
			return named[i].Name == preferred
		}
		return named[i].Name < named[j].Name
	})

	values := make([]string, 0, len(named))
	for _, c := range named {
		values = append(values, c.Value)
	}
	return values
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
