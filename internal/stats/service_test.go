package stats_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/carpediem/console/internal/stats"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStatsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stats Service Suite")
}

type MockRepository struct {
	signIns       map[int]int64
	registrations map[int]int64
	roles         map[int]int64
	err           error
}

func (m *MockRepository) SignInsByMonth(int) (map[int]int64, error) {
	return m.signIns, m.err
}

func (m *MockRepository) RegistrationsByMonth(int) (map[int]int64, error) {
	return m.registrations, m.err
}

func (m *MockRepository) CountByRole() (map[int]int64, error) {
	return m.roles, m.err
}

var _ = Describe("Stats Service", func() {
	var (
		mockRepo *MockRepository
		service  *stats.Service
	)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = stats.NewService(mockRepo, logger)
	})

	Describe("MonthlySignIns", func() {
		BeforeEach(func() {
			mockRepo.signIns = map[int]int64{1: 12, 3: 4}
		})

		It("should zero-fill all twelve months", func() {
			series, err := service.MonthlySignIns(2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Year).To(Equal(2026))
			Expect(series.Points).To(HaveLen(12))
			Expect(series.Points[0].Count).To(Equal(int64(12)))
			Expect(series.Points[1].Count).To(BeZero())
			Expect(series.Points[2].Count).To(Equal(int64(4)))
		})

		It("should label months in French", func() {
			series, err := service.MonthlySignIns(2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Points[0].Label).To(Equal("janvier"))
			Expect(series.Points[7].Label).To(Equal("août"))
			Expect(series.Points[11].Label).To(Equal("décembre"))
		})
	})

	Describe("MonthlyRegistrations", func() {
		It("should propagate repository errors", func() {
			mockRepo.err = errors.New("database error")
			_, err := service.MonthlyRegistrations(2026)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database error"))
		})
	})

	Describe("RoleDistribution", func() {
		BeforeEach(func() {
			mockRepo.roles = map[int]int64{1: 2, 2: 40, 9: 1}
		})

		It("should label known roles and keep unknown ones", func() {
			distribution, err := service.RoleDistribution()
			Expect(err).NotTo(HaveOccurred())
			Expect(distribution).To(HaveLen(3))
			Expect(distribution[0].Label).To(Equal("Administrateur"))
			Expect(distribution[0].Count).To(Equal(int64(2)))
			Expect(distribution[1].Label).To(Equal("Utilisateur Standard"))
			Expect(distribution[2].Label).To(Equal("Non défini"))
		})
	})
})
