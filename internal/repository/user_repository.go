package repository

import (
	"context"
	"database/sql"
	"strings"
)

// User mirrors the 'users' table. Password holds whatever the configured
// credential verifier stored (plaintext in legacy mode, a bcrypt hash
// otherwise) and must never reach a response body.
type User struct {
	ID           uint64
	Email        string
	Password     string
	Name         string
	Height       float64
	TargetWeight float64
	Goal         string
	Age          int
	Gender       string
	CreatedAt    string
}

// Profile is the projection returned after an update. It deliberately omits
// email as well as password; the list endpoint keeps email.
type Profile struct {
	ID           uint64
	Name         string
	Height       float64
	TargetWeight float64
	Goal         string
	Age          int
	Gender       string
}

// UserPatch carries the subset of user columns a partial update wants to
// change. Nil fields are left untouched. Building the UPDATE from this struct
// keeps caller input out of the SQL text entirely.
type UserPatch struct {
	Name         *string
	Height       *float64
	TargetWeight *float64
	Goal         *string
	Age          *int
	Gender       *string
}

// Empty reports whether the patch carries no fields.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Height == nil && p.TargetWeight == nil &&
		p.Goal == nil && p.Age == nil && p.Gender == nil
}

// assignments returns the SET clauses and arguments in the fixed allow-list
// order: name, height, target_weight, goal, age, gender. The order is part of
// the contract; tests assert the generated statement text.
func (p UserPatch) assignments() ([]string, []any) {
	var cols []string
	var args []any
	if p.Name != nil {
		cols, args = append(cols, "name = ?"), append(args, *p.Name)
	}
	if p.Height != nil {
		cols, args = append(cols, "height = ?"), append(args, *p.Height)
	}
	if p.TargetWeight != nil {
		cols, args = append(cols, "target_weight = ?"), append(args, *p.TargetWeight)
	}
	if p.Goal != nil {
		cols, args = append(cols, "goal = ?"), append(args, *p.Goal)
	}
	if p.Age != nil {
		cols, args = append(cols, "age = ?"), append(args, *p.Age)
	}
	if p.Gender != nil {
		cols, args = append(cols, "gender = ?"), append(args, *p.Gender)
	}
	return cols, args
}

// UserRepo manages persistence for users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// List returns every user without the password column, in store order.
func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, name, height, target_weight, goal, age, gender, created_at FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Height, &u.TargetWeight,
			&u.Goal, &u.Age, &u.Gender, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByEmail fetches a user by email, password included, for the login check.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password, name, height, target_weight, goal, age, gender, created_at FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Height, &u.TargetWeight,
		&u.Goal, &u.Age, &u.Gender, &u.CreatedAt)
	return u, err
}

// Create checks email uniqueness and inserts the user. The explicit check
// runs first so a taken email maps to ErrEmailExists even on engines without
// the unique index; the 1062 duplicate-key fallback covers the race where two
// registrations pass the check together.
func (r *UserRepo) Create(ctx context.Context, u User) (uint64, error) {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = ? LIMIT 1", u.Email).Scan(&existing)
	if err == nil {
		return 0, ErrEmailExists
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password, name, height, target_weight, goal, age, gender) VALUES (?,?,?,?,?,?,?,?)",
		u.Email, u.Password, u.Name, u.Height, u.TargetWeight, u.Goal, u.Age, u.Gender)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Exists reports whether a user row with the given id is present.
func (r *UserRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var got uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id = ? LIMIT 1", id).Scan(&got)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a non-empty patch to the user row.
func (r *UserRepo) Update(ctx context.Context, id uint64, p UserPatch) error {
	cols, args := p.assignments()
	if len(cols) == 0 {
		return ErrNoFields
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(cols, ", ")+" WHERE id = ?", args...)
	return err
}

// GetProfile fetches the post-update projection (no password, no email).
func (r *UserRepo) GetProfile(ctx context.Context, id uint64) (Profile, error) {
	var p Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, height, target_weight, goal, age, gender FROM users WHERE id = ? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Height, &p.TargetWeight, &p.Goal, &p.Age, &p.Gender)
	if err == sql.ErrNoRows {
		return p, ErrUserNotFound
	}
	return p, err
}
