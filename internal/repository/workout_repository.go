package repository

import (
	"context"
	"database/sql"
)

// WorkoutRecord mirrors the 'workout_records' table. Like weight records the
// id comes from the client and may be NULL; completed defaults to false when
// the request omits it.
type WorkoutRecord struct {
	ID        *string
	UserID    uint64
	Date      string
	Category  string
	Type      string
	Intensity string
	Duration  int
	MET       float64
	Calories  float64
	Completed bool
	Title     string
	Memo      *string
}

// WorkoutRepo manages persistence for workout records.
type WorkoutRepo struct{ DB *sql.DB }

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo { return &WorkoutRepo{DB: db} }

// Create inserts a workout record unconditionally.
func (r *WorkoutRepo) Create(ctx context.Context, w WorkoutRecord) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO workout_records (id, user_id, date, category, type, intensity, duration, met, calories, completed, title, memo) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		w.ID, w.UserID, w.Date, w.Category, w.Type, w.Intensity, w.Duration, w.MET, w.Calories, w.Completed, w.Title, w.Memo)
	return err
}
