package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func strp(s string) *string { return &s }

func f64p(f float64) *float64 { return &f }

func intp(i int) *int { return &i }

func TestUserCreateEmailTaken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ? LIMIT 1")).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	_, err := repo.Create(context.Background(), User{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateInserts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ? LIMIT 1")).
		WithArgs("a@b.c").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (email, password, name, height, target_weight, goal, age, gender) VALUES (?,?,?,?,?,?,?,?)")).
		WithArgs("a@b.c", "pw", "Ann", 170.0, 60.0, "diet", 30, "F").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), User{
		Email: "a@b.c", Password: "pw", Name: "Ann",
		Height: 170, TargetWeight: 60, Goal: "diet", Age: 30, Gender: "F",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateKeyRace(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ? LIMIT 1")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.email'"))

	_, err := repo.Create(context.Background(), User{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

// Assignment order follows the fixed allow-list (goal before age), not the
// JSON key order of the incoming request.
func TestUserUpdateAssignmentOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET goal = ?, age = ? WHERE id = ?")).
		WithArgs("bulk", 5, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 9, UserPatch{Age: intp(5), Goal: strp("bulk")})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateAllFields(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE users SET name = ?, height = ?, target_weight = ?, goal = ?, age = ?, gender = ? WHERE id = ?")).
		WithArgs("Bo", 180.0, 75.0, "maintain", 41, "M", uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 2, UserPatch{
		Name: strp("Bo"), Height: f64p(180), TargetWeight: f64p(75),
		Goal: strp("maintain"), Age: intp(41), Gender: strp("M"),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateEmptyPatch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// No SQL expectations: an empty patch must never reach the store.
	err := repo.Update(context.Background(), 1, UserPatch{})
	assert.ErrorIs(t, err, ErrNoFields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPatchEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	assert.False(t, UserPatch{Gender: strp("F")}.Empty())
}

func TestUserExists(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? LIMIT 1")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	ok, err := repo.Exists(context.Background(), 4)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	ok, err = repo.Exists(context.Background(), 99)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestUserList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "height", "target_weight", "goal", "age", "gender", "created_at"}).
		AddRow(1, "a@b.c", "Ann", 170.0, 60.0, "diet", 30, "F", "2024-01-01 10:00:00")
	mock.ExpectQuery("SELECT id, email, name, height, target_weight, goal, age, gender, created_at FROM users").
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "a@b.c", users[0].Email)
	assert.Empty(t, users[0].Password) // never selected by List
}

func TestUserGetProfileNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT id, name, height, target_weight, goal, age, gender FROM users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProfile(context.Background(), 12)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
