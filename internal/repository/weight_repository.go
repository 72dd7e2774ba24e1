package repository

import (
	"context"
	"database/sql"
)

// WeightRecord mirrors the 'weight_records' table. The id is supplied by the
// dashboard client (a string), so it is passed through verbatim and may be
// NULL. Height and memo are optional.
type WeightRecord struct {
	ID     *string
	UserID uint64
	Date   string
	Weight float64
	Height *float64
	BMI    float64
	Memo   *string
}

// WeightRepo manages persistence for weight records.
type WeightRepo struct{ DB *sql.DB }

func NewWeightRepo(db *sql.DB) *WeightRepo { return &WeightRepo{DB: db} }

// ListByUser returns all weight records for a user, newest date first. An
// unknown user id yields an empty slice, not an error.
func (r *WeightRepo) ListByUser(ctx context.Context, userID uint64) ([]WeightRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, date, weight, height, bmi, memo FROM weight_records WHERE user_id = ? ORDER BY date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]WeightRecord, 0)
	for rows.Next() {
		var w WeightRecord
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Weight, &w.Height, &w.BMI, &w.Memo); err != nil {
			return nil, err
		}
		recs = append(recs, w)
	}
	return recs, rows.Err()
}

// Create inserts a weight record unconditionally; there is no referential
// check against users, matching the dashboard's append-only model.
func (r *WeightRepo) Create(ctx context.Context, w WeightRecord) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO weight_records (id, user_id, date, weight, height, bmi, memo) VALUES (?,?,?,?,?,?,?)",
		w.ID, w.UserID, w.Date, w.Weight, w.Height, w.BMI, w.Memo)
	return err
}
