package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const maxOpenConns = 10

// Open 建立数据库连接并执行自动迁移。
// dsn 以 postgres:// 或 postgresql:// 开头时使用 PostgreSQL，否则按 SQLite 文件路径处理。
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("database dsn is empty")
	}

	var (
		gdb *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		if dirErr := ensureParentDir(dsn); dirErr != nil {
			return nil, dirErr
		}
		gdb, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	// 自动迁移模式，为核心模型创建表
	if err := gdb.AutoMigrate(
		&ContactMessage{},
		&Testimonial{},
		&GalleryImage{},
		&AdminUser{},
	); err != nil {
		return nil, err
	}

	return gdb, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
