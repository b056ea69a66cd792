package Controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Collection endpoints answer with a paginated envelope; named sub-lists
// (active_services and friends) answer with bare arrays. Clients normalize
// both shapes.
func listEnvelope(c *gin.Context, count int64, results interface{}) gin.H {
	return gin.H{
		"count":   count,
		"results": results,
	}
}

// pageWindow reads ?page / ?page_size and returns the offset/limit to apply.
// limit -1 means no paging was requested.
func pageWindow(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 0, -1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = 25
	}
	return (page - 1) * size, size
}

func currentUserID(c *gin.Context) *uint {
	value, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok {
		return nil
	}
	return &id
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("userRole") == "admin"
}

// ownProfessionalID returns the roster id linked to the caller, empty when the
// caller is not a professional.
func ownProfessionalID(c *gin.Context) string {
	return c.GetString("professionalID")
}
