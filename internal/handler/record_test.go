package handler

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/healthhub/dashboard-api/internal/events"
	"github.com/healthhub/dashboard-api/internal/repository"
)

func newRecordEnv(t *testing.T) (*RecordHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	h := NewRecordHandler(
		repository.NewWeightRepo(db),
		repository.NewWorkoutRepo(db),
		repository.NewMetricRepo(db),
		&events.Publisher{},
	)
	return h, mock
}

func TestAddWeight(t *testing.T) {
	h, mock := newRecordEnv(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO weight_records (id, user_id, date, weight, height, bmi, memo) VALUES (?,?,?,?,?,?,?)")).
		WithArgs(nil, uint64(1), "2024-01-01", 70.0, nil, 22.1, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := do(t, h.AddWeight, http.MethodPost, "/api/weight",
		`{"user_id":1,"date":"2024-01-01","weight":70,"bmi":22.1}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Weight record added"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddWeightMissingBMI(t *testing.T) {
	h, mock := newRecordEnv(t)

	rec := do(t, h.AddWeight, http.MethodPost, "/api/weight",
		`{"user_id":1,"date":"2024-01-01","weight":70}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing field: bmi"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWeightUnknownUserEmptyArray(t *testing.T) {
	h, mock := newRecordEnv(t)

	mock.ExpectQuery("SELECT id, user_id, date, weight, height, bmi, memo FROM weight_records").
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "weight", "height", "bmi", "memo"}))

	rec := do(t, h.ListWeight, http.MethodGet, "/api/weight/999", "", map[string]string{"userId": "999"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String()) // never a 404
}

func TestListWeightNullOptionals(t *testing.T) {
	h, mock := newRecordEnv(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "weight", "height", "bmi", "memo"}).
		AddRow(nil, 1, "2024-01-01", 70.0, nil, 22.1, nil)
	mock.ExpectQuery("SELECT id, user_id, date, weight, height, bmi, memo FROM weight_records").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	rec := do(t, h.ListWeight, http.MethodGet, "/api/weight/1", "", map[string]string{"userId": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":null,"user_id":1,"date":"2024-01-01","weight":70,"height":null,"bmi":22.1,"memo":null}]`,
		rec.Body.String())
}

func TestListWeightInvalidUserID(t *testing.T) {
	h, _ := newRecordEnv(t)

	rec := do(t, h.ListWeight, http.MethodGet, "/api/weight/abc", "", map[string]string{"userId": "abc"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddWorkoutDefaultsCompletedFalse(t *testing.T) {
	h, mock := newRecordEnv(t)

	mock.ExpectExec("INSERT INTO workout_records").
		WithArgs("wk-1", uint64(1), "2024-01-02", "cardio", "run", "high", 40, 9.8, 412.0, false, "morning run", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"id":"wk-1","user_id":1,"date":"2024-01-02","category":"cardio","type":"run","intensity":"high","duration":40,"met":9.8,"calories":412,"title":"morning run"}`
	rec := do(t, h.AddWorkout, http.MethodPost, "/api/workouts", body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Workout record added"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddWorkoutMissingTitle(t *testing.T) {
	h, _ := newRecordEnv(t)

	body := `{"user_id":1,"date":"2024-01-02","category":"cardio","type":"run","intensity":"high","duration":40,"met":9.8,"calories":412}`
	rec := do(t, h.AddWorkout, http.MethodPost, "/api/workouts", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing field: title"}`, rec.Body.String())
}

func TestAddHealthMetric(t *testing.T) {
	h, mock := newRecordEnv(t)

	mock.ExpectExec("INSERT INTO health_metrics").
		WithArgs(uint64(1), "2024-01-01", 120, 80, 95.0, 7.5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"user_id":1,"date":"2024-01-01","systolic":120,"diastolic":80,"blood_sugar":95,"sleep_hours":7.5}`
	rec := do(t, h.AddHealthMetric, http.MethodPost, "/api/health", body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Health metric added"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddHealthMetricMissingSleepHours(t *testing.T) {
	h, _ := newRecordEnv(t)

	body := `{"user_id":1,"date":"2024-01-01","systolic":120,"diastolic":80,"blood_sugar":95}`
	rec := do(t, h.AddHealthMetric, http.MethodPost, "/api/health", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing field: sleep_hours"}`, rec.Body.String())
}

func TestListHealthMetrics(t *testing.T) {
	h, mock := newRecordEnv(t)

	rows := sqlmock.NewRows([]string{"user_id", "date", "systolic", "diastolic", "blood_sugar", "sleep_hours"}).
		AddRow(1, "2024-01-02", 120, 80, 95.0, 7.5)
	mock.ExpectQuery("SELECT user_id, date, systolic, diastolic, blood_sugar, sleep_hours FROM health_metrics").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	rec := do(t, h.ListHealthMetrics, http.MethodGet, "/api/health/1", "", map[string]string{"userId": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"user_id":1,"date":"2024-01-02","systolic":120,"diastolic":80,"blood_sugar":95,"sleep_hours":7.5}]`,
		rec.Body.String())
}
