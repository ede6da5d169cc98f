package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/utils"
)

// DownloadRecorder counts successful GETs of public files per day and path.
// Paths under any of prefixes and the /download endpoint are counted.
func DownloadRecorder(db *gorm.DB, prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		path := c.Request.URL.Path
		if !isDownloadPath(path, prefixes) {
			return
		}

		// Atomic upsert to avoid duplicate key errors under concurrency.
		// count is table-qualified: postgres sees both the row and EXCLUDED in DO UPDATE.
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr(models.PageView{}.TableName() + ".count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: Today(), Path: path, Count: 1}).Error
		if err != nil {
			utils.Sugar.Warnf("download counter failed path=%s err=%v", path, err)
		}
	}
}

// Today is the local calendar day used as the counter bucket.
func Today() string {
	return time.Now().In(time.Local).Format("2006-01-02")
}

func isDownloadPath(path string, prefixes []string) bool {
	if strings.HasPrefix(path, "/api/") {
		return strings.HasSuffix(path, "/download")
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
