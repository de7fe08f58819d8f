package httperr

import (
	"net/http"

	"minimarket-backoffice/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithKind maps the use-case error taxonomy onto HTTP statuses. The
// error message is already client-safe (use cases wrap internals), and any
// structured payload, like the per-product shortages of a failed sale, rides
// in detail.
func AbortWithKind(c *gin.Context, err error) {
	kind, ok := errs.KindOf(err)
	if !ok {
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	AbortWithError(c, statusOf(kind), err, err.Error(), errs.DetailsOf(err))
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidArgument, errs.KindInvalidState:
		return http.StatusBadRequest
	case errs.KindConflict, errs.KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
