package handler

import (
	"github.com/brianmahove/recruiting-ai/internal/auth"
	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SignUp creates a recruiter account.
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = model.UserRoleRecruiter
	}

	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		response.InternalError(c, "")
		return
	}

	ctx := c.Request.Context()
	id, err := h.Repo.CreateUser(ctx, req.Username, req.Email, pwHash, req.Role)
	if err != nil {
		h.repoError(c, err)
		return
	}

	response.Created(c, model.UserResponse{
		UserID:   id,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
}

// Login verifies credentials and returns an access token.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Sugar().Warnw("login user not found", "email", req.Email)
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("login password mismatch", "email", req.Email)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, expiresAt, err := auth.GenerateToken(h.JwtSecret, user.UserID, user.Email, string(user.Role), h.JwtTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, model.TokenResponse{AccessToken: token, ExpiresAt: expiresAt.Unix()})
}

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	id := currentUserID(c)
	if id == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Repo.GetUserByID(c.Request.Context(), *id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, model.UserResponse{UserID: user.UserID, Username: user.Username, Email: user.Email, Role: user.Role})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repo.ListUsers(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, model.UserResponse{UserID: u.UserID, Username: u.Username, Email: u.Email, Role: u.Role})
	}
	response.OK(c, out)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "invalid user id")
		return
	}

	user, err := h.Repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, model.UserResponse{UserID: user.UserID, Username: user.Username, Email: user.Email, Role: user.Role})
}
