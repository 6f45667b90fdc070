package repository

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Catalog *CatalogRepository
	Builds  BuildStore
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB, rdb *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *Repositories {
	return &Repositories{
		Catalog: NewCatalogRepository(db),
		Builds:  NewRedisBuildStore(rdb, keyPrefix, ttl, logger),
	}
}
