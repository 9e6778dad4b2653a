package handlers

import (
	"net/http"

	intconfig "vouchergen/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "vouchergen"})
}

// DBCheck reports whether the optional supplier-contact database is
// reachable. The service runs fine without it.
func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusOK, gin.H{"database": "not configured"})
		return
	}
	if err := intconfig.DB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"database": "unreachable", "error": err.Error()})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM supplier_contacts").Scan(&count); err != nil {
		c.JSON(http.StatusOK, gin.H{"database": "connected", "supplier_contacts": "missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "connected", "supplier_contacts": count})
}
