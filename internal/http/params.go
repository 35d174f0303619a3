package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
)

// pageFromQuery lee startIndex, limit y el parametro de orden indicado.
func pageFromQuery(c *gin.Context, orderParam string) domain.Page {
	startIndex, _ := strconv.Atoi(c.Query("startIndex"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.NewPage(startIndex, limit, domain.ParseSortOrder(c.Query(orderParam)))
}
