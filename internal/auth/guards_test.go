package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/access-management/internal"
)

const adminRoleID int64 = 1

var _ = ginkgo.Describe("Guards", func() {
	var (
		guards   *Guards
		tokenGen *JWTTokenGenerator
		passed   bool
		next     http.Handler
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("guard-secret-guard-secret-guard!", time.Hour)
		guards = NewGuards(tokenGen, adminRoleID, slog.Default())
		passed = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			w.WriteHeader(http.StatusOK)
		})
	})

	issueToken := func(userID int64, roleIDs []int64) string {
		token, err := tokenGen.Generate(userID, roleIDs)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	ginkgo.Describe("RequireAdministrator", func() {
		doRequest := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/users", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			rec := httptest.NewRecorder()
			guards.RequireAdministrator()(next).ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should reject a request with no authorization header", func() {
			rec := doRequest("")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a non-bearer authorization header", func() {
			rec := doRequest("Basic dXNlcjpwYXNz")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a malformed token", func() {
			rec := doRequest("Bearer not.a.token")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an expired token", func() {
			expiredGen := NewJWTTokenGenerator("guard-secret-guard-secret-guard!", -time.Minute)
			token, err := expiredGen.Generate(2, []int64{adminRoleID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec := doRequest("Bearer " + token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should forbid a valid token lacking the administrator role", func() {
			rec := doRequest("Bearer " + issueToken(3, []int64{7, 9}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should pass a valid token carrying the administrator role", func() {
			rec := doRequest("Bearer " + issueToken(2, []int64{7, adminRoleID}))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(passed).To(gomega.BeTrue())
		})

		ginkgo.It("should store the claims and acting user id in the request context", func() {
			var claims *Claims
			var actorID int64
			inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, _ = ClaimsFromContext(r.Context())
				actorID = internal.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("POST", "/users", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(42, []int64{adminRoleID}))
			rec := httptest.NewRecorder()
			guards.RequireAdministrator()(inspect).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(claims).ToNot(gomega.BeNil())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(42)))
			gomega.Expect(actorID).To(gomega.Equal(int64(42)))
		})
	})

	ginkgo.Describe("ForbidAdminRoleAssignment", func() {
		doRequest := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/roles/assignPermission", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleAssignment()(next).ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should forbid touching the administrator role's permissions", func() {
			rec := doRequest(`{"role_id": 1, "permission_id": 3}`)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should pass other roles through", func() {
			rec := doRequest(`{"role_id": 2, "permission_id": 3}`)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(passed).To(gomega.BeTrue())
		})

		ginkgo.It("should leave the body readable for the handler", func() {
			var decoded map[string]int64
			inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				gomega.Expect(json.Unmarshal(body, &decoded)).To(gomega.Succeed())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("POST", "/roles/assignPermission", bytes.NewBufferString(`{"role_id": 2, "permission_id": 3}`))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleAssignment()(inspect).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(decoded["role_id"]).To(gomega.Equal(int64(2)))
			gomega.Expect(decoded["permission_id"]).To(gomega.Equal(int64(3)))
		})

		ginkgo.It("should pass a request with no body", func() {
			req := httptest.NewRequest("POST", "/roles/assignPermission", nil)
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleAssignment()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("ForbidAdminRoleTarget", func() {
		ginkgo.It("should forbid mutation targeting the administrator role via body", func() {
			req := httptest.NewRequest("PUT", "/roles/1", bytes.NewBufferString(`{"id": 1, "name": "renamed"}`))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleTarget()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should forbid mutation targeting the administrator role via path", func() {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "1")

			req := httptest.NewRequest("DELETE", "/roles/1", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleTarget()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should forbid a path targeting the administrator role despite a decoy body id", func() {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "1")

			req := httptest.NewRequest("PUT", "/roles/1", bytes.NewBufferString(`{"id": 101, "name": "renamed"}`))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleTarget()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(passed).To(gomega.BeFalse())
		})

		ginkgo.It("should pass mutations of other roles", func() {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "4")

			req := httptest.NewRequest("DELETE", "/roles/4", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()
			guards.ForbidAdminRoleTarget()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(passed).To(gomega.BeTrue())
		})
	})
})
