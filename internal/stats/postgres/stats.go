package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) SignInsByMonth(year int) (map[int]int64, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS mois, COUNT(*) AS total
		FROM connexions
		WHERE EXTRACT(YEAR FROM created_at) = ?
		GROUP BY mois`
	return r.monthCounts(query, year)
}

func (r *StatsRepository) RegistrationsByMonth(year int) (map[int]int64, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS mois, COUNT(*) AS total
		FROM utilisateurs
		WHERE EXTRACT(YEAR FROM created_at) = ?
		GROUP BY mois`
	return r.monthCounts(query, year)
}

func (r *StatsRepository) CountByRole() (map[int]int64, error) {
	rows, err := r.db.Raw(`SELECT role, COUNT(*) FROM utilisateurs GROUP BY role`).Rows()
	if err != nil {
		return nil, fmt.Errorf("count by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var role int
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *StatsRepository) monthCounts(query string, year int) (map[int]int64, error) {
	rows, err := r.db.Raw(query, year).Rows()
	if err != nil {
		return nil, fmt.Errorf("month counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var month int
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		counts[month] = count
	}
	return counts, rows.Err()
}
