package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kvoice/kvoice/internal/identity"
)

// GetQuota reports the guest allowance so clients can render the
// remaining-invoices banner. Members always read as unlimited.
func (s *Server) GetQuota(c *gin.Context) {
	ctx := c.Request.Context()
	id, _ := identity.FromContext(ctx)

	resp := gin.H{
		"guest": id.Guest,
		"limit": s.gate.Limit(),
	}
	if id.Guest {
		resp["remaining"] = s.gate.Remaining(ctx)
		resp["exhausted"] = s.gate.HasReachedLimit(ctx, true)
	}

	c.JSON(http.StatusOK, resp)
}
