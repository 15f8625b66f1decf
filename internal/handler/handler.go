// Package handler holds the gin handlers for the recruiting API.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/brianmahove/recruiting-ai/internal/cache"
	"github.com/brianmahove/recruiting-ai/internal/groq"
	"github.com/brianmahove/recruiting-ai/internal/ingest"
	"github.com/brianmahove/recruiting-ai/internal/mailer"
	"github.com/brianmahove/recruiting-ai/internal/repository"
	"github.com/brianmahove/recruiting-ai/internal/screening"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Logger      *zap.Logger
	Repo        *repository.Repository
	ResumeStore *ingest.Store
	VideoStore  *ingest.Store
	Locks       *cache.SessionLocks
	Guard       *screening.Guard
	Groq        *groq.Client
	Mailer      *mailer.Mailer
	JwtSecret   string
	JwtTTL      time.Duration
	MaxUpload   int64 // bytes
	MaxVideo    int64 // bytes
}

// pathID parses a positive int64 path parameter, replying 422 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.ValidationError(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// repoError maps repository sentinel errors onto the API error codes.
func (h *Handler) repoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrProtected):
		response.Conflict(c, err.Error())
	default:
		h.Logger.Sugar().Errorw("repository error", "path", c.Request.URL.Path, "err", err)
		response.InternalError(c, "")
	}
}

// currentUserID pulls the authenticated user's id from the context, when the
// request came through the auth middleware.
func currentUserID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
