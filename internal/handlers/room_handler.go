package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gustavopprado/sistema-reservas/internal/helpers"
	"github.com/gustavopprado/sistema-reservas/internal/services"
)

func ListRooms(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := rs.ListRooms(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("failed to list rooms"))
			return
		}

		c.JSON(http.StatusOK, rooms)
	}
}
