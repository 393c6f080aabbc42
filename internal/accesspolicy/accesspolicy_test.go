package accesspolicy_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/carpediem/console/internal/accesspolicy"
)

func TestAccessPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Policy Suite")
}

func boolPtr(b bool) *bool { return &b }

var _ = Describe("Classify", func() {
	It("should classify role 1 as administrator", func() {
		c := accesspolicy.Classify(1)
		Expect(c.Tier).To(Equal(accesspolicy.TierAdministrator))
		Expect(c.Label).To(Equal("Administrateur"))
	})

	It("should classify role 2 as standard user", func() {
		c := accesspolicy.Classify(2)
		Expect(c.Tier).To(Equal(accesspolicy.TierStandardUser))
		Expect(c.Label).To(Equal("Utilisateur Standard"))
	})

	It("should classify role 3 as guest", func() {
		c := accesspolicy.Classify(3)
		Expect(c.Tier).To(Equal(accesspolicy.TierGuest))
		Expect(c.Label).To(Equal("Invité"))
	})

	It("should classify every other value as unknown", func() {
		for _, role := range []int{0, -1, 4, 7, 42, -100, 1 << 30} {
			c := accesspolicy.Classify(role)
			Expect(c.Tier).To(Equal(accesspolicy.TierUnknown), "role %d", role)
			Expect(c.Label).To(Equal("Non défini"))
		}
	})

	It("should be deterministic across call sites", func() {
		for i := 0; i < 100; i++ {
			Expect(accesspolicy.Classify(1).Tier).To(Equal(accesspolicy.TierAdministrator))
			Expect(accesspolicy.Classify(2).Tier).To(Equal(accesspolicy.TierStandardUser))
		}
	})
})

var _ = Describe("VisibleEntries", func() {
	It("should give administrators the full catalog in order", func() {
		entries := accesspolicy.VisibleEntries(accesspolicy.TierAdministrator)
		Expect(entries).To(HaveLen(len(accesspolicy.Catalog())))

		labels := make([]string, len(entries))
		for i, e := range entries {
			labels[i] = e.Label
		}
		Expect(labels).To(Equal([]string{
			"Home", "Utilisateurs", "Mon Profil", "Sous-domaines", "Journal", "Console",
		}))
	})

	It("should hide admin-only entries from standard users", func() {
		entries := accesspolicy.VisibleEntries(accesspolicy.TierStandardUser)

		for _, e := range entries {
			Expect(e.AdminOnly).To(BeFalse())
			Expect(e.Label).NotTo(Equal("Utilisateurs"))
			Expect(e.Label).NotTo(Equal("Console"))
		}
	})

	It("should keep a stable order for standard users", func() {
		entries := accesspolicy.VisibleEntries(accesspolicy.TierStandardUser)

		labels := make([]string, len(entries))
		for i, e := range entries {
			labels[i] = e.Label
		}
		Expect(labels).To(Equal([]string{"Home", "Mon Profil", "Sous-domaines", "Journal"}))
	})

	It("should treat unknown and guest tiers like non-administrators", func() {
		for _, tier := range []accesspolicy.Tier{accesspolicy.TierUnknown, accesspolicy.TierGuest} {
			for _, e := range accesspolicy.VisibleEntries(tier) {
				Expect(e.AdminOnly).To(BeFalse())
			}
		}
	})

	It("should not let callers mutate the catalog", func() {
		entries := accesspolicy.Catalog()
		entries[0].Label = "tampered"
		Expect(accesspolicy.Catalog()[0].Label).To(Equal("Home"))
	})
})

var _ = Describe("Resolver", func() {
	var (
		resolver *accesspolicy.Resolver
		fixed    time.Time
	)

	BeforeEach(func() {
		fixed = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
		resolver = accesspolicy.NewResolver("carpediem.pro", "client").WithClock(func() time.Time { return fixed })
	})

	Context("when the subject is an administrator", func() {
		It("should authorize on the admin sub-domain regardless of active flag", func() {
			decision := resolver.Resolve(accesspolicy.Subject{Role: 1, Active: boolPtr(false), SubDomain: "x"})

			Expect(decision.Status).To(Equal(accesspolicy.StatusAuthorized))
			Expect(decision.SubDomain).To(Equal("admin"))
			Expect(decision.FullURL).To(Equal("https://admin.carpediem.pro"))
		})
	})

	Context("when the subject is a standard user", func() {
		It("should block a deactivated account", func() {
			decision := resolver.Resolve(accesspolicy.Subject{Role: 2, Active: boolPtr(false)})
			Expect(decision.Status).To(Equal(accesspolicy.StatusBlocked))
		})

		It("should default absent fields to authorized on the client sub-domain", func() {
			decision := resolver.Resolve(accesspolicy.Subject{Role: 2})

			Expect(decision.Status).To(Equal(accesspolicy.StatusAuthorized))
			Expect(decision.SubDomain).To(Equal("client"))
		})

		It("should treat an explicit active flag as authorized", func() {
			decision := resolver.Resolve(accesspolicy.Subject{Role: 2, Active: boolPtr(true), SubDomain: "partenaires"})

			Expect(decision.Status).To(Equal(accesspolicy.StatusAuthorized))
			Expect(decision.SubDomain).To(Equal("partenaires"))
		})
	})

	It("should satisfy the URL round-trip law for every subject", func() {
		subjects := []accesspolicy.Subject{
			{Role: 1},
			{Role: 1, Active: boolPtr(false), SubDomain: "x"},
			{Role: 2},
			{Role: 2, Active: boolPtr(false)},
			{Role: 2, SubDomain: "partenaires"},
			{Role: 0},
			{Role: 3, SubDomain: "invites"},
			{Role: 99, Active: boolPtr(true)},
		}

		for _, s := range subjects {
			decision := resolver.Resolve(s)
			expected := fmt.Sprintf("https://%s.%s", decision.SubDomain, resolver.PrincipalDomain())
			Expect(decision.FullURL).To(Equal(expected))
		}
	})

	It("should stamp the decision with the resolution clock", func() {
		decision := resolver.Resolve(accesspolicy.Subject{Role: 2})
		Expect(decision.LastSeenAt).To(Equal(fixed))
	})

	It("should fall back to the client sub-domain when none is configured", func() {
		r := accesspolicy.NewResolver("monsite.com", "")
		decision := r.Resolve(accesspolicy.Subject{Role: 2})
		Expect(decision.SubDomain).To(Equal("client"))
	})
})

var _ = Describe("Palette", func() {
	It("should return distinct light and dark tables", func() {
		light := accesspolicy.Palette("light")
		dark := accesspolicy.Palette("dark")

		Expect(light.Primary).NotTo(BeEmpty())
		Expect(dark.Primary).NotTo(BeEmpty())
		Expect(light).NotTo(Equal(dark))
	})

	It("should fall back to light for unknown keys", func() {
		Expect(accesspolicy.Palette("anything-else")).To(Equal(accesspolicy.Palette("light")))
		Expect(accesspolicy.Palette("")).To(Equal(accesspolicy.Palette("light")))
	})

	It("should map access statuses onto palette colors", func() {
		table := accesspolicy.Palette("light")

		Expect(accesspolicy.StatusColor(table, accesspolicy.StatusAuthorized)).To(Equal(table.Success))
		Expect(accesspolicy.StatusColor(table, accesspolicy.StatusRestricted)).To(Equal(table.Warning))
		Expect(accesspolicy.StatusColor(table, accesspolicy.StatusBlocked)).To(Equal(table.Danger))
		Expect(accesspolicy.StatusColor(table, accesspolicy.Status("???"))).To(Equal(table.Gray400))
	})
})
