package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/dashboard-api/internal/events"
	"github.com/healthhub/dashboard-api/internal/repository"
)

// RecordHandler bundles the repositories for the append-only record
// endpoints: weight records, workout records and health metrics.
type RecordHandler struct {
	Weights  *repository.WeightRepo
	Workouts *repository.WorkoutRepo
	Metrics  *repository.MetricRepo
	Events   *events.Publisher
}

func NewRecordHandler(w *repository.WeightRepo, wo *repository.WorkoutRepo, m *repository.MetricRepo, pub *events.Publisher) *RecordHandler {
	return &RecordHandler{Weights: w, Workouts: wo, Metrics: m, Events: pub}
}

// ----- DTOs -----

type addWeightReq struct {
	ID     *string  `json:"id"`
	UserID *uint64  `json:"user_id"`
	Date   *string  `json:"date"`
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	BMI    *float64 `json:"bmi"`
	Memo   *string  `json:"memo"`
}

type addWorkoutReq struct {
	ID        *string  `json:"id"`
	UserID    *uint64  `json:"user_id"`
	Date      *string  `json:"date"`
	Category  *string  `json:"category"`
	Type      *string  `json:"type"`
	Intensity *string  `json:"intensity"`
	Duration  *int     `json:"duration"`
	MET       *float64 `json:"met"`
	Calories  *float64 `json:"calories"`
	Completed *bool    `json:"completed"`
	Title     *string  `json:"title"`
	Memo      *string  `json:"memo"`
}

type addMetricReq struct {
	UserID     *uint64  `json:"user_id"`
	Date       *string  `json:"date"`
	Systolic   *int     `json:"systolic"`
	Diastolic  *int     `json:"diastolic"`
	BloodSugar *float64 `json:"blood_sugar"`
	SleepHours *float64 `json:"sleep_hours"`
}

type weightResp struct {
	ID     *string  `json:"id"`
	UserID uint64   `json:"user_id"`
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	Height *float64 `json:"height"`
	BMI    float64  `json:"bmi"`
	Memo   *string  `json:"memo"`
}

type metricResp struct {
	UserID     uint64  `json:"user_id"`
	Date       string  `json:"date"`
	Systolic   int     `json:"systolic"`
	Diastolic  int     `json:"diastolic"`
	BloodSugar float64 `json:"blood_sugar"`
	SleepHours float64 `json:"sleep_hours"`
}

func (h *RecordHandler) recordAdded(c echo.Context, kind string, userID uint64, date string) {
	_ = h.Events.RecordAdded(c.Request().Context(), events.RecordAddedEvent{
		Kind:    kind,
		UserID:  userID,
		Date:    date,
		AddedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// ListWeight returns a user's weight records, newest date first. An unknown
// user id is not an error: the result is an empty array.
func (h *RecordHandler) ListWeight(c echo.Context) error {
	uid, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.Weights.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	out := make([]weightResp, 0, len(recs))
	for _, w := range recs {
		out = append(out, weightResp{
			ID:     w.ID,
			UserID: w.UserID,
			Date:   w.Date,
			Weight: w.Weight,
			Height: w.Height,
			BMI:    w.BMI,
			Memo:   w.Memo,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// AddWeight inserts a weight record. Required: user_id, date, weight, bmi.
func (h *RecordHandler) AddWeight(c echo.Context) error {
	var req addWeightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := firstMissing([]field{
		{"user_id", req.UserID != nil},
		{"date", req.Date != nil},
		{"weight", req.Weight != nil},
		{"bmi", req.BMI != nil},
	}); missing != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: " + missing})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec := repository.WeightRecord{
		ID:     req.ID,
		UserID: *req.UserID,
		Date:   *req.Date,
		Weight: *req.Weight,
		Height: req.Height,
		BMI:    *req.BMI,
		Memo:   req.Memo,
	}
	if err := h.Weights.Create(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.recordAdded(c, "weight", rec.UserID, rec.Date)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Weight record added"})
}

// AddWorkout inserts a workout record. Required: user_id, date, category,
// type, intensity, duration, met, calories, title. Completed defaults to
// false when absent.
func (h *RecordHandler) AddWorkout(c echo.Context) error {
	var req addWorkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := firstMissing([]field{
		{"user_id", req.UserID != nil},
		{"date", req.Date != nil},
		{"category", req.Category != nil},
		{"type", req.Type != nil},
		{"intensity", req.Intensity != nil},
		{"duration", req.Duration != nil},
		{"met", req.MET != nil},
		{"calories", req.Calories != nil},
		{"title", req.Title != nil},
	}); missing != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: " + missing})
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec := repository.WorkoutRecord{
		ID:        req.ID,
		UserID:    *req.UserID,
		Date:      *req.Date,
		Category:  *req.Category,
		Type:      *req.Type,
		Intensity: *req.Intensity,
		Duration:  *req.Duration,
		MET:       *req.MET,
		Calories:  *req.Calories,
		Completed: completed,
		Title:     *req.Title,
		Memo:      req.Memo,
	}
	if err := h.Workouts.Create(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.recordAdded(c, "workout", rec.UserID, rec.Date)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Workout record added"})
}

// ListHealthMetrics returns a user's health metrics, newest date first.
func (h *RecordHandler) ListHealthMetrics(c echo.Context) error {
	uid, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	metrics, err := h.Metrics.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	out := make([]metricResp, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, metricResp{
			UserID:     m.UserID,
			Date:       m.Date,
			Systolic:   m.Systolic,
			Diastolic:  m.Diastolic,
			BloodSugar: m.BloodSugar,
			SleepHours: m.SleepHours,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// AddHealthMetric inserts a health metric. Required: user_id, date, systolic,
// diastolic, blood_sugar, sleep_hours.
func (h *RecordHandler) AddHealthMetric(c echo.Context) error {
	var req addMetricReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := firstMissing([]field{
		{"user_id", req.UserID != nil},
		{"date", req.Date != nil},
		{"systolic", req.Systolic != nil},
		{"diastolic", req.Diastolic != nil},
		{"blood_sugar", req.BloodSugar != nil},
		{"sleep_hours", req.SleepHours != nil},
	}); missing != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: " + missing})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := repository.HealthMetric{
		UserID:     *req.UserID,
		Date:       *req.Date,
		Systolic:   *req.Systolic,
		Diastolic:  *req.Diastolic,
		BloodSugar: *req.BloodSugar,
		SleepHours: *req.SleepHours,
	}
	if err := h.Metrics.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.recordAdded(c, "health", m.UserID, m.Date)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Health metric added"})
}
