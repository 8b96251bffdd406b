package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/access-management/internal"
	"github.com/frahmantamala/access-management/internal/transport"
)

type ctxKey string

const ContextClaimsKey ctxKey = "claims"

// ClaimsFromContext returns the token claims stored by RequireAdministrator.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ContextClaimsKey).(*Claims)
	return c, ok
}

// TokenValidator is the part of the token service the guards need.
type TokenValidator interface {
	Validate(tokenString string) (*Claims, error)
}

// Guards are request-time predicates gating the management endpoints.
// Each guard short-circuits with a client-facing unauthorized/forbidden
// response before the handler runs; a request passes only if every
// guard attached to its route passes.
type Guards struct {
	tokens      TokenValidator
	adminRoleID int64
	logger      *slog.Logger
}

func NewGuards(tokens TokenValidator, adminRoleID int64, logger *slog.Logger) *Guards {
	return &Guards{
		tokens:      tokens,
		adminRoleID: adminRoleID,
		logger:      logger,
	}
}

// RequireAdministrator rejects requests without a valid bearer token
// whose claims include the configured administrator role id.
func (g *Guards) RequireAdministrator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := transport.BearerToken(r)
			if token == "" {
				g.logger.Warn("guard rejected request: missing bearer token", "path", r.URL.Path)
				writeGuardError(w, internal.ErrMissingToken)
				return
			}

			claims, err := g.tokens.Validate(token)
			if err != nil {
				g.logger.Warn("guard rejected request: token validation failed", "path", r.URL.Path, "error", err)
				if appErr, ok := internal.IsAppError(err); ok {
					writeGuardError(w, appErr)
				} else {
					writeGuardError(w, internal.ErrInvalidToken)
				}
				return
			}

			if !claims.HasRole(g.adminRoleID) {
				g.logger.Warn("guard rejected request: administrator role missing",
					"path", r.URL.Path,
					"user_id", claims.UserID)
				writeGuardError(w, internal.ErrAdminRoleRequired)
				return
			}

			ctx := context.WithValue(r.Context(), ContextClaimsKey, claims)
			ctx = internal.ContextWithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ForbidAdminRoleAssignment rejects any request whose body targets the
// administrator role: its permission set cannot be changed through the
// assign/unassign endpoints. Used on both directions.
func (g *Guards) ForbidAdminRoleAssignment() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := g.roleIDFromBody(r, "role_id")
			if ok && g.isAdministratorRole(roleID) {
				g.logger.Warn("guard rejected request: admin role permission change", "path", r.URL.Path)
				writeGuardError(w, internal.NewForbiddenError(
					"cannot assign or unassign permissions to the administrator role",
					internal.ErrCodeAdminRoleProtected))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ForbidAdminRoleTarget rejects updates or deletes whose target role id
// is the administrator role, regardless of caller privilege: the
// administrator role cannot be renamed or deleted. Both the URL path
// and the body id are checked; the handlers resolve the target from
// the path, so a decoy body id must not mask the real target.
func (g *Guards) ForbidAdminRoleTarget() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.targetsAdministratorRole(r) {
				g.logger.Warn("guard rejected request: admin role mutation", "path", r.URL.Path)
				writeGuardError(w, internal.NewForbiddenError(
					"cannot modify or delete the administrator role",
					internal.ErrCodeAdminRoleProtected))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guards) targetsAdministratorRole(r *http.Request) bool {
	if param := chi.URLParam(r, "id"); param != "" {
		if parsed, err := strconv.ParseInt(param, 10, 64); err == nil && g.isAdministratorRole(parsed) {
			return true
		}
	}
	if roleID, ok := g.roleIDFromBody(r, "id"); ok && g.isAdministratorRole(roleID) {
		return true
	}
	return false
}

// isAdministratorRole is the single predicate shared by the assignment,
// unassignment and mutation guards.
func (g *Guards) isAdministratorRole(roleID int64) bool {
	return roleID == g.adminRoleID
}

// roleIDFromBody peeks at the JSON request body for a numeric field and
// restores the body so the handler can decode it again.
func (g *Guards) roleIDFromBody(r *http.Request, field string) (int64, bool) {
	if r.Body == nil {
		return 0, false
	}

	body, err := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return 0, false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, false
	}

	raw, exists := payload[field]
	if !exists {
		return 0, false
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

func writeGuardError(w http.ResponseWriter, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	status, body := appErr.ToHTTPResponse()
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
