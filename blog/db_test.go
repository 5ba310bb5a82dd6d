package blog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studieren/blog_back/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
// cache=shared 保证连接池里的多个连接看到同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Tag{}, &models.Post{}))
	return db
}

func seedAuthorAndCategory(t *testing.T, db *gorm.DB) (models.User, models.Category) {
	t.Helper()

	user := models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(&user).Error)
	category := models.Category{Name: "Engineering"}
	require.NoError(t, db.Create(&category).Error)
	return user, category
}

func tagCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&n).Error)
	return n
}
