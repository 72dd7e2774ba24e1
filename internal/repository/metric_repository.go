package repository

import (
	"context"
	"database/sql"
)

// HealthMetric mirrors the 'health_metrics' table. The table exposes no id
// column and (user_id, date) is not unique; a day can be logged twice.
type HealthMetric struct {
	UserID     uint64
	Date       string
	Systolic   int
	Diastolic  int
	BloodSugar float64
	SleepHours float64
}

// MetricRepo manages persistence for health metrics.
type MetricRepo struct{ DB *sql.DB }

func NewMetricRepo(db *sql.DB) *MetricRepo { return &MetricRepo{DB: db} }

// ListByUser returns all health metrics for a user, newest date first.
func (r *MetricRepo) ListByUser(ctx context.Context, userID uint64) ([]HealthMetric, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT user_id, date, systolic, diastolic, blood_sugar, sleep_hours FROM health_metrics WHERE user_id = ? ORDER BY date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make([]HealthMetric, 0)
	for rows.Next() {
		var m HealthMetric
		if err := rows.Scan(&m.UserID, &m.Date, &m.Systolic, &m.Diastolic, &m.BloodSugar, &m.SleepHours); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// Create inserts a health metric unconditionally.
func (r *MetricRepo) Create(ctx context.Context, m HealthMetric) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO health_metrics (user_id, date, systolic, diastolic, blood_sugar, sleep_hours) VALUES (?,?,?,?,?,?)",
		m.UserID, m.Date, m.Systolic, m.Diastolic, m.BloodSugar, m.SleepHours)
	return err
}
