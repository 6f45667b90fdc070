package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchQuery 目录搜索条件
type SearchQuery struct {
	Kind     string
	Text     string
	Filters  entity.ActiveFilters
	Page     int
	PageSize int
}

// Normalize applies the default and maximum page size.
func (q *SearchQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// KindCount is the number of catalog items of one component type.
type KindCount struct {
	ComponentType string `json:"component_type"`
	Count         int64  `json:"count"`
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Upsert inserts items or overwrites existing rows with the same objectID.
func (r *CatalogRepository) Upsert(ctx context.Context, items ...*entity.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "object_id"}},
			UpdateAll: true,
		}).
		CreateInBatches(items, 200).Error
	if err != nil {
		return fmt.Errorf("upsert catalog items: %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, objectID string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "object_id = ?", objectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find catalog item %s: %w", objectID, err)
	}
	return &item, nil
}

// Search 按类型、关键字与兼容性过滤条件分页查询
//
// A filter only constrains the component types that carry that facet;
// other types pass through untouched.
func (r *CatalogRepository) Search(ctx context.Context, q SearchQuery) ([]entity.CatalogItem, int64, error) {
	q.Normalize()

	query := r.db.WithContext(ctx).Model(&entity.CatalogItem{})
	if q.Kind != "" {
		query = query.Where("component_type = ?", q.Kind)
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		query = query.Where(`LOWER(brand || ' ' || model) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(text))+"%")
	}
	query = applyFilters(query, q.Filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count catalog items: %w", err)
	}

	var items []entity.CatalogItem
	err := query.
		Order("price_usd ASC, object_id ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search catalog items: %w", err)
	}
	return items, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike quotes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func member(value string) string {
	return "%|" + escapeLike(value) + "|%"
}

func applyFilters(query *gorm.DB, f entity.ActiveFilters) *gorm.DB {
	if f.Socket != nil {
		query = query.Where(
			"(component_type NOT IN ? OR (component_type IN ? AND socket = ?) OR (component_type = ? AND socket_support LIKE ? ESCAPE '\\'))",
			[]string{"CPU", "Motherboard", "Cooler"},
			[]string{"CPU", "Motherboard"}, *f.Socket,
			"Cooler", member(*f.Socket),
		)
	}
	if f.MemoryType != nil {
		query = query.Where(
			"(component_type NOT IN ? OR memory_type LIKE ? ESCAPE '\\')",
			[]string{"CPU", "Motherboard", "RAM"},
			member(*f.MemoryType),
		)
	}
	if f.FormFactor != nil {
		query = query.Where(
			"(component_type NOT IN ? OR (component_type = ? AND form_factor = ?) OR (component_type = ? AND form_factors LIKE ? ESCAPE '\\'))",
			[]string{"Motherboard", "Case"},
			"Motherboard", *f.FormFactor,
			"Case", member(*f.FormFactor),
		)
	}
	return query
}

// List returns every item of a kind (all kinds when empty) in a stable order.
func (r *CatalogRepository) List(ctx context.Context, kind string) ([]entity.CatalogItem, error) {
	query := r.db.WithContext(ctx).Order("component_type ASC, object_id ASC")
	if kind != "" {
		query = query.Where("component_type = ?", kind)
	}
	var items []entity.CatalogItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return items, nil
}

func (r *CatalogRepository) CountByKind(ctx context.Context) ([]KindCount, error) {
	var counts []KindCount
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogItem{}).
		Select("component_type, COUNT(*) AS count").
		Group("component_type").
		Order("component_type ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count catalog items by kind: %w", err)
	}
	return counts, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, objectID string) error {
	res := r.db.WithContext(ctx).Delete(&entity.CatalogItem{}, "object_id = ?", objectID)
	if res.Error != nil {
		return fmt.Errorf("delete catalog item %s: %w", objectID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll empties the catalog and reports how many rows were removed.
func (r *CatalogRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.CatalogItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete catalog: %w", res.Error)
	}
	return res.RowsAffected, nil
}
