package database

import (
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化 sqlite 数据库
// path: 数据库文件路径，目录不存在时自动创建
// models: 需要自动建表/迁移的结构体指针
func InitDB(path string, models ...interface{}) *gorm.DB {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			clog.Fatal("数据目录创建失败", "dir", dir, "err", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// 单操作者本地进程，日志只留警告
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		clog.Fatal("数据库连接失败", "path", path, "err", err)
	}

	// sqlite 写入是单写者，限制连接数避免 database is locked
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			clog.Fatal("自动建表出错", "err", err)
		}
	}
	return db
}
