package portal_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carpediem/console/internal/accesspolicy"
	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/portal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPortalHandler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Portal Handler Suite")
}

var _ = Describe("Portal Handler", func() {
	var handler *portal.Handler

	requestAs := func(a *account.Account, target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if a != nil {
			req = req.WithContext(account.NewContext(req.Context(), a))
		}
		return req
	}

	boolPtr := func(v bool) *bool { return &v }
	strPtr := func(v string) *string { return &v }

	BeforeEach(func() {
		handler = portal.NewHandler(accesspolicy.NewResolver("carpediem.pro", "client"))
	})

	Describe("GET /navigation", func() {
		It("should include administrator entries for an administrator", func() {
			admin := &account.Account{AuthID: "auth-admin", Role: 1}
			w := httptest.NewRecorder()

			handler.GetNavigation(w, requestAs(admin, "/navigation"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				RoleLabel string               `json:"role_label"`
				Entries   []accesspolicy.Entry `json:"entries"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.RoleLabel).To(Equal("Administrateur"))

			routes := make([]string, len(response.Entries))
			for i, e := range response.Entries {
				routes[i] = e.Route
			}
			Expect(routes).To(ContainElements("/utilisateurs", "/admin/console"))
		})

		It("should hide administrator entries from a standard user", func() {
			standard := &account.Account{AuthID: "auth-std", Role: 2}
			w := httptest.NewRecorder()

			handler.GetNavigation(w, requestAs(standard, "/navigation"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Entries []accesspolicy.Entry `json:"entries"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

			for _, e := range response.Entries {
				Expect(e.AdminOnly).To(BeFalse())
			}
		})

		It("should be unauthorized without a session account", func() {
			w := httptest.NewRecorder()
			handler.GetNavigation(w, requestAs(nil, "/navigation"))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /access", func() {
		It("should send administrators to the admin sub-domain", func() {
			admin := &account.Account{AuthID: "auth-admin", Role: 1, SubDomain: strPtr("autre"), Active: boolPtr(false)}
			w := httptest.NewRecorder()

			handler.GetAccess(w, requestAs(admin, "/access"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var decision accesspolicy.Decision
			Expect(json.NewDecoder(w.Body).Decode(&decision)).To(Succeed())
			Expect(decision.SubDomain).To(Equal("admin"))
			Expect(decision.Status).To(Equal(accesspolicy.StatusAuthorized))
			Expect(decision.FullURL).To(Equal("https://admin.carpediem.pro"))
		})

		It("should block a deactivated standard user", func() {
			blocked := &account.Account{AuthID: "auth-std", Role: 2, Active: boolPtr(false)}
			w := httptest.NewRecorder()

			handler.GetAccess(w, requestAs(blocked, "/access"))

			var decision accesspolicy.Decision
			Expect(json.NewDecoder(w.Body).Decode(&decision)).To(Succeed())
			Expect(decision.Status).To(Equal(accesspolicy.StatusBlocked))
			Expect(decision.SubDomain).To(Equal("client"))
		})
	})
})
