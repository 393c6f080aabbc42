package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/carpediem/console/internal/account"
	accountPostgres "github.com/carpediem/console/internal/account/postgres"
	"github.com/carpediem/console/internal/core/events"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const createUtilisateursTable = `
CREATE TABLE utilisateurs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	auth_id TEXT,
	email TEXT NOT NULL UNIQUE,
	prenom TEXT NOT NULL DEFAULT '',
	nom TEXT NOT NULL DEFAULT '',
	role INTEGER NOT NULL DEFAULT 2,
	actif BOOLEAN,
	sous_domaine TEXT,
	domaines TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

var _ = Describe("Account Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    *accountPostgres.AccountRepository
		service *account.Service
		handler *account.Handler
		router  *chi.Mux
	)

	adminContext := func(r *http.Request) *http.Request {
		admin := &account.Account{ID: 1, AuthID: "auth-admin", Email: "admin@carpediem.pro", Role: 1}
		return r.WithContext(account.NewContext(r.Context(), admin))
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Exec(createUtilisateursTable).Error).NotTo(HaveOccurred())

		repo = accountPostgres.NewAccountRepository(db)
		bus := events.NewEventBus(slogger)
		service = account.NewService(repo, bus, slogger)
		handler = account.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/utilisateurs", handler.ListRoster)
		router.Post("/utilisateurs", handler.CreateRosterEntry)
		router.Patch("/utilisateurs/{id}", handler.UpdateRosterEntry)
		router.Delete("/utilisateurs/{id}", handler.DeleteRosterEntry)

		seed := []*account.Account{
			{AuthID: "auth-admin", Email: "admin@carpediem.pro", FirstName: "Marie", LastName: "Dupont", Role: 1},
			{Email: "paul.martin@carpediem.pro", FirstName: "Paul", LastName: "Martin", Role: 2},
		}
		for _, a := range seed {
			_, err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
		}
	})

	Describe("GET /utilisateurs", func() {
		It("should list the roster", func() {
			req := adminContext(httptest.NewRequest(http.MethodGet, "/utilisateurs", nil))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response struct {
				Utilisateurs []*account.Account `json:"utilisateurs"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Utilisateurs).To(HaveLen(2))
		})
	})

	Describe("POST /utilisateurs", func() {
		It("should create a roster entry without an auth id", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"nom":          "Bernard",
				"prenom":       "Sophie",
				"email":        "sophie.bernard@carpediem.pro",
				"role":         2,
				"sous_domaine": "atelier",
			})

			req := adminContext(httptest.NewRequest(http.MethodPost, "/utilisateurs", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created account.Account
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.AuthID).To(BeEmpty())
			Expect(*created.SubDomain).To(Equal("atelier"))
		})

		It("should answer a duplicate email with a conflict", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"email": "paul.martin@carpediem.pro",
				"role":  2,
			})

			req := adminContext(httptest.NewRequest(http.MethodPost, "/utilisateurs", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should reject a domain entry containing a comma", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"email":    "lucie.roy@carpediem.pro",
				"role":     2,
				"domaines": []string{"atelier,client"},
			})

			req := adminContext(httptest.NewRequest(http.MethodPost, "/utilisateurs", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject the guest role", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"email": "guest@carpediem.pro",
				"role":  3,
			})

			req := adminContext(httptest.NewRequest(http.MethodPost, "/utilisateurs", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PATCH /utilisateurs/{id}", func() {
		It("should deactivate an account", func() {
			body, _ := json.Marshal(map[string]interface{}{"actif": false})

			req := adminContext(httptest.NewRequest(http.MethodPatch, "/utilisateurs/2", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated account.Account
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.Active).NotTo(BeNil())
			Expect(*updated.Active).To(BeFalse())
		})

		It("should answer a conflict when the new email belongs to another row", func() {
			body, _ := json.Marshal(map[string]interface{}{"email": "admin@carpediem.pro"})

			req := adminContext(httptest.NewRequest(http.MethodPatch, "/utilisateurs/2", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should return 404 for an unknown id", func() {
			body, _ := json.Marshal(map[string]interface{}{"actif": false})

			req := adminContext(httptest.NewRequest(http.MethodPatch, "/utilisateurs/999", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a non-numeric id", func() {
			body, _ := json.Marshal(map[string]interface{}{"actif": false})

			req := adminContext(httptest.NewRequest(http.MethodPatch, "/utilisateurs/abc", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /utilisateurs/{id}", func() {
		It("should remove the row for good", func() {
			req := adminContext(httptest.NewRequest(http.MethodDelete, "/utilisateurs/2", nil))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))

			_, err := repo.GetByID(2)
			Expect(err).To(MatchError(account.ErrNotFound))
		})
	})

	Describe("GET /accounts/me", func() {
		It("should return the caller's profile with its role label", func() {
			req := httptest.NewRequest(http.MethodGet, "/accounts/me", nil)
			current, err := repo.GetByAuthID("auth-admin")
			Expect(err).NotTo(HaveOccurred())
			req = req.WithContext(account.NewContext(context.Background(), current))

			w := httptest.NewRecorder()
			handler.GetCurrentAccount(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response["email"]).To(Equal("admin@carpediem.pro"))
			Expect(response["role_label"]).To(Equal("Administrateur"))
		})

		It("should be unauthorized without a session account", func() {
			req := httptest.NewRequest(http.MethodGet, "/accounts/me", nil)
			w := httptest.NewRecorder()

			handler.GetCurrentAccount(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
