package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-catalog/internal/api/shared/errors"
	"github.com/feral-file/ff-catalog/internal/logger"
)

// respond writes the envelope for the outcome of op. Every outcome is sent
// with 200 OK; collaborator failures are logged with full detail.
func respond(c *gin.Context, op string, data any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, dto.OK(data))
		return
	}

	logFailure(c, op, err)
	c.JSON(http.StatusOK, dto.Failure(apierrors.Message(op, err)))
}

// respondPartial writes a failure envelope that still carries what was done
// before the operation stopped
func respondPartial(c *gin.Context, op string, data any, err error) {
	logFailure(c, op, err)
	env := dto.Failure(apierrors.Message(op, err))
	env.Data = data
	c.JSON(http.StatusOK, env)
}

func logFailure(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	if apierrors.IsCallerError(err) {
		logger.DebugCtx(ctx, "request rejected",
			zap.String("op", op),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	} else {
		logger.ErrorCtx(ctx, err,
			zap.String("op", op),
			zap.String("path", c.Request.URL.Path))
	}
}

// respondFailure writes a failure envelope for a request rejected before the executor ran
func respondFailure(c *gin.Context, op string, err error) {
	respond(c, op, nil, err)
}
