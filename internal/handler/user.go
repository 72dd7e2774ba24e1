package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthhub/dashboard-api/internal/auth"
	"github.com/healthhub/dashboard-api/internal/events"
	"github.com/healthhub/dashboard-api/internal/repository"
)

// UserHandler bundles the dependencies for the user endpoints.
type UserHandler struct {
	Users    *repository.UserRepo
	Verifier auth.Verifier
	Events   *events.Publisher
}

func NewUserHandler(users *repository.UserRepo, v auth.Verifier, pub *events.Publisher) *UserHandler {
	return &UserHandler{Users: users, Verifier: v, Events: pub}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email        *string  `json:"email"`
	Password     *string  `json:"password"`
	Name         *string  `json:"name"`
	Height       *float64 `json:"height"`
	TargetWeight *float64 `json:"target_weight"`
	Goal         *string  `json:"goal"`
	Age          *int     `json:"age"`
	Gender       *string  `json:"gender"`
}

type updateUserReq struct {
	Name         *string  `json:"name"`
	Height       *float64 `json:"height"`
	TargetWeight *float64 `json:"target_weight"`
	Goal         *string  `json:"goal"`
	Age          *int     `json:"age"`
	Gender       *string  `json:"gender"`
}

// userResp is a user with the password stripped.
type userResp struct {
	ID           uint64  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Height       float64 `json:"height"`
	TargetWeight float64 `json:"target_weight"`
	Goal         string  `json:"goal"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	CreatedAt    string  `json:"created_at"`
}

// profileResp is the post-update projection: no password and no email.
type profileResp struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Height       float64 `json:"height"`
	TargetWeight float64 `json:"target_weight"`
	Goal         string  `json:"goal"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
}

func toUserResp(u repository.User) userResp {
	return userResp{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Height:       u.Height,
		TargetWeight: u.TargetWeight,
		Goal:         u.Goal,
		Age:          u.Age,
		Gender:       u.Gender,
		CreatedAt:    u.CreatedAt,
	}
}

// List returns every user without passwords.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Login matches email and password and returns the sanitized user.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !h.Verifier.Verify(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Register creates a user after checking the fixed required-field set and
// email uniqueness.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if missing := firstMissing([]field{
		{"email", req.Email != nil},
		{"password", req.Password != nil},
		{"name", req.Name != nil},
		{"height", req.Height != nil},
		{"target_weight", req.TargetWeight != nil},
		{"goal", req.Goal != nil},
		{"age", req.Age != nil},
		{"gender", req.Gender != nil},
	}); missing != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: " + missing})
	}

	cred, err := h.Verifier.Credential(*req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := repository.User{
		Email:        *req.Email,
		Password:     cred,
		Name:         *req.Name,
		Height:       *req.Height,
		TargetWeight: *req.TargetWeight,
		Goal:         *req.Goal,
		Age:          *req.Age,
		Gender:       *req.Gender,
	}
	uid, err := h.Users.Create(ctx, u)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	_ = h.Events.UserRegistered(ctx, events.UserRegisteredEvent{
		UserID:       uid,
		Email:        u.Email,
		Name:         u.Name,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

// Update applies a partial update over the fixed allow-list of profile
// fields. An empty patch is a deliberate no-op: no write is issued and a
// distinct message comes back.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Users.Exists(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	patch := repository.UserPatch{
		Name:         req.Name,
		Height:       req.Height,
		TargetWeight: req.TargetWeight,
		Goal:         req.Goal,
		Age:          req.Age,
		Gender:       req.Gender,
	}
	if patch.Empty() {
		return c.JSON(http.StatusOK, echo.Map{"message": "No fields to update"})
	}
	if err := h.Users.Update(ctx, id, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	p, err := h.Users.GetProfile(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, profileResp{
		ID:           p.ID,
		Name:         p.Name,
		Height:       p.Height,
		TargetWeight: p.TargetWeight,
		Goal:         p.Goal,
		Age:          p.Age,
		Gender:       p.Gender,
	})
}
