package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

// respondError translates a downstream failure into the client-facing
// response. Business failures keep their message verbatim; anything else is
// an internal error with the cause kept out of the body.
func respondError(c *gin.Context, err error) {
	var rpcErr *rpc.Error
	if errors.As(err, &rpcErr) {
		c.JSON(translateStatus(rpcErr.StatusCode), gin.H{"error": rpcErr.Message})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func translateStatus(statusCode int) int {
	switch statusCode {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict:
		return statusCode
	default:
		return http.StatusInternalServerError
	}
}
