package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
)

var (
	// ErrStorageNotConfigured is returned by Archive when no object store is set up.
	ErrStorageNotConfigured = errors.New("object storage not configured")
	// ErrInvalidImport is returned when an import payload cannot be read at all.
	ErrInvalidImport = errors.New("invalid catalog import")
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogService 组件目录服务
type CatalogService struct {
	repo        *repository.CatalogRepository
	minioClient *minio.Client
	bucketName  string
	logger      *zap.Logger
}

func NewCatalogService(repo *repository.CatalogRepository, minioClient *minio.Client, bucketName string, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repo:        repo,
		minioClient: minioClient,
		bucketName:  bucketName,
		logger:      logger,
	}
}

// SearchRequest 目录搜索请求
type SearchRequest struct {
	Kind     string `form:"kind"`
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	// ApplyFilters narrows results with the filters derived from the build.
	ApplyFilters bool `form:"apply_filters"`
}

// SearchHit is a catalog component annotated against the caller's build.
type SearchHit struct {
	Component     entity.Component           `json:"component"`
	Compatibility entity.CompatibilityReport `json:"compatibility"`
}

type SearchResult struct {
	Items    []SearchHit          `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Filters  entity.ActiveFilters `json:"filters"`
}

// Search 搜索目录并标注每个结果与当前方案的兼容状态
func (s *CatalogService) Search(ctx context.Context, req SearchRequest, build entity.Build) (*SearchResult, error) {
	q := repository.SearchQuery{Text: req.Query, Page: req.Page, PageSize: req.PageSize}
	q.Normalize()
	if req.Kind != "" {
		kind, err := entity.ParseKind(req.Kind)
		if err != nil {
			return nil, err
		}
		q.Kind = kind.String()
	}
	if req.ApplyFilters {
		q.Filters = engine.DeriveFilters(build)
	}

	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Items:    make([]SearchHit, 0, len(items)),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Filters:  q.Filters,
	}
	candidates := make([]entity.Component, 0, len(items))
	for i := range items {
		c, err := items[i].Component()
		if err != nil {
			s.logger.Warn("Skipping undecodable catalog item",
				zap.String("object_id", items[i].ObjectID),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, c)
	}
	for i, report := range engine.AnnotateCompatibility(candidates, build) {
		result.Items = append(result.Items, SearchHit{Component: candidates[i], Compatibility: report})
	}
	return result, nil
}

func (s *CatalogService) Get(ctx context.Context, objectID string) (entity.Component, error) {
	item, err := s.repo.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return item.Component()
}

func (s *CatalogService) Stats(ctx context.Context) ([]repository.KindCount, error) {
	return s.repo.CountByKind(ctx)
}

// Delete 删除单个目录组件
func (s *CatalogService) Delete(ctx context.Context, objectID string) error {
	if err := s.repo.Delete(ctx, objectID); err != nil {
		return err
	}
	s.logger.Info("Catalog item deleted", zap.String("object_id", objectID))
	return nil
}

// Purge empties the catalog ahead of a full reload.
func (s *CatalogService) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Catalog purged", zap.Int64("deleted", n))
	return n, nil
}

// ImportError describes one rejected record.
type ImportError struct {
	Sheet   string `json:"sheet,omitempty"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Success int           `json:"imported"`
	Failed  int           `json:"errors"`
	Errors  []ImportError `json:"error_details,omitempty"`
}

func (r *ImportResult) fail(sheet string, row int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, ImportError{Sheet: sheet, Row: row, Message: err.Error()})
}

// prepare normalises and tags a mapped record for storage.
func prepare(c entity.Component) (*entity.CatalogItem, error) {
	info := c.Info()
	if info.PriceUSD < 0 {
		return nil, errors.New("price_usd must not be negative")
	}
	engine.NormalizeComponent(c)
	return entity.NewCatalogItem(c)
}

func (s *CatalogService) store(ctx context.Context, items []*entity.CatalogItem, result *ImportResult) (*ImportResult, error) {
	if err := s.repo.Upsert(ctx, items...); err != nil {
		return nil, err
	}
	result.Success = len(items)
	s.logger.Info("Catalog import finished",
		zap.Int("imported", result.Success),
		zap.Int("errors", result.Failed),
	)
	return result, nil
}

// ImportJSON 导入 JSON 数组格式的目录记录（按 component_type 区分类型）
func (s *CatalogService) ImportJSON(ctx context.Context, data []byte) (*ImportResult, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array: %v", ErrInvalidImport, err)
	}

	result := &ImportResult{}
	items := make([]*entity.CatalogItem, 0, len(records))
	for i, raw := range records {
		c, err := decodeImportRecord(raw)
		if err != nil {
			result.fail("", i+1, err)
			continue
		}
		item, err := prepare(c)
		if err != nil {
			result.fail("", i+1, err)
			continue
		}
		items = append(items, item)
	}
	return s.store(ctx, items, result)
}

// ImportXLSX 从Excel导入目录：每种组件一个工作表，表名为组件类型，首行为字段名
func (s *CatalogService) ImportXLSX(ctx context.Context, f *excelize.File) (*ImportResult, error) {
	result := &ImportResult{}
	var items []*entity.CatalogItem

	for _, sheet := range f.GetSheetList() {
		kind, err := entity.ParseKind(sheet)
		if err != nil {
			s.logger.Debug("Skipping sheet", zap.String("sheet", sheet))
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		header := rows[0]
		for i, row := range rows[1:] { // 跳过表头
			if isBlank(row) {
				continue
			}
			c, err := decodeRow(kind, header, row)
			if err != nil {
				result.fail(sheet, i+2, err)
				continue
			}
			item, err := prepare(c)
			if err != nil {
				result.fail(sheet, i+2, err)
				continue
			}
			items = append(items, item)
		}
	}
	return s.store(ctx, items, result)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// Export 导出目录为Excel，每种组件一个工作表
func (s *CatalogService) Export(ctx context.Context) (*excelize.File, string, error) {
	items, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, "", err
	}
	byKind := make(map[entity.Kind][]entity.Component)
	for i := range items {
		c, err := items[i].Component()
		if err != nil {
			s.logger.Warn("Skipping undecodable catalog item",
				zap.String("object_id", items[i].ObjectID),
				zap.Error(err),
			)
			continue
		}
		byKind[c.Kind()] = append(byKind[c.Kind()], c)
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("create header style: %w", err)
	}

	for i, kind := range entity.AllKinds {
		sheet := kind.String()
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, "", fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, sheetColumns(kind), byKind[kind], headerStyle); err != nil {
			return nil, "", fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	filename := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

// Archive 导出目录并上传到对象存储，返回对象名
func (s *CatalogService) Archive(ctx context.Context) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageNotConfigured
	}
	f, _, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("render workbook: %w", err)
	}

	objectName := fmt.Sprintf("catalog/%s/%s.xlsx", time.Now().Format("2006/01/02"), uuid.New().String()[:8])
	_, err = s.minioClient.PutObject(ctx, s.bucketName, objectName, buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload archive: %w", err)
	}
	s.logger.Info("Catalog archived", zap.String("object", objectName))
	return objectName, nil
}
