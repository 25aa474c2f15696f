package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/store"
)

type ResearchQueryRequest struct {
	Statement string `json:"statement" binding:"required"`
}

// RunResearchQuery executes a free-form read-only statement against the
// active store. The store rejects anything that is not a read before it
// reaches the database.
func (h *Handler) RunResearchQuery(c *gin.Context) {
	var req ResearchQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columns, rows, err := h.Store.ResearchQuery(c.Request.Context(), req.Statement)
	if err != nil {
		if errors.Is(err, store.ErrStatementNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Statement not allowed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Query failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"columns":   columns,
		"rows":      rows,
		"row_count": len(rows),
	})
}
