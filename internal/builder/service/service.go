package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/config"
)

// Services 服务集合
type Services struct {
	Build   *BuildService
	Catalog *CatalogService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *Services {
	minioClient := NewMinIOClient(cfg.MinIO, logger)

	return &Services{
		Build:   NewBuildService(repos.Builds, repos.Catalog, hub, logger),
		Catalog: NewCatalogService(repos.Catalog, minioClient, cfg.MinIO.Bucket, logger),
	}
}

// NewMinIOClient 初始化MinIO客户端；未配置或初始化失败时返回 nil，归档功能随之关闭
func NewMinIOClient(cfg config.MinIOConfig, logger *zap.Logger) *minio.Client {
	if cfg.Endpoint == "" {
		return nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Warn("MinIO unavailable, catalog archive disabled", zap.Error(err))
		return nil
	}
	return client
}
