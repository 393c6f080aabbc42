package stats

import (
	"fmt"
	"log/slog"

	"github.com/carpediem/console/internal/accesspolicy"
)

// frenchMonths index is month-1. Labels feed the console charts directly.
var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// MonthPoint is one bar of a monthly chart.
type MonthPoint struct {
	Month int    `json:"mois"`
	Label string `json:"libelle"`
	Count int64  `json:"total"`
}

// MonthlySeries is a full year of monthly counts, zero-filled.
type MonthlySeries struct {
	Year   int          `json:"annee"`
	Points []MonthPoint `json:"points"`
}

// RoleCount is one slice of the role distribution.
type RoleCount struct {
	Role  int    `json:"role"`
	Label string `json:"libelle"`
	Count int64  `json:"total"`
}

type Repository interface {
	SignInsByMonth(year int) (map[int]int64, error)
	RegistrationsByMonth(year int) (map[int]int64, error)
	CountByRole() (map[int]int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// MonthlySignIns aggregates the connexions journal for one year.
func (s *Service) MonthlySignIns(year int) (*MonthlySeries, error) {
	counts, err := s.repo.SignInsByMonth(year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sign ins: %w", err)
	}
	return buildSeries(year, counts), nil
}

// MonthlyRegistrations aggregates roster creations for one year.
func (s *Service) MonthlyRegistrations(year int) (*MonthlySeries, error) {
	counts, err := s.repo.RegistrationsByMonth(year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registrations: %w", err)
	}
	return buildSeries(year, counts), nil
}

// RoleDistribution counts roster rows per role, labelled. Roles outside the
// known set still show up, labelled the same way the rest of the console
// labels them.
func (s *Service) RoleDistribution() ([]RoleCount, error) {
	counts, err := s.repo.CountByRole()
	if err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}

	distribution := make([]RoleCount, 0, len(counts))
	for _, role := range []int{accesspolicy.RoleAdministrator, accesspolicy.RoleStandardUser, accesspolicy.RoleGuest} {
		if count, ok := counts[role]; ok {
			distribution = append(distribution, RoleCount{
				Role:  role,
				Label: accesspolicy.Classify(role).Label,
				Count: count,
			})
			delete(counts, role)
		}
	}
	for role, count := range counts {
		distribution = append(distribution, RoleCount{
			Role:  role,
			Label: accesspolicy.Classify(role).Label,
			Count: count,
		})
	}
	return distribution, nil
}

// buildSeries zero-fills the twelve months so charts never have holes.
func buildSeries(year int, counts map[int]int64) *MonthlySeries {
	series := &MonthlySeries{Year: year, Points: make([]MonthPoint, 12)}
	for m := 1; m <= 12; m++ {
		series.Points[m-1] = MonthPoint{
			Month: m,
			Label: frenchMonths[m-1],
			Count: counts[m],
		}
	}
	return series
}
