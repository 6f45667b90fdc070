package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// CatalogItem 组件目录记录（搜索索引的本地副本）
//
// Facet columns hold "|"-delimited values so membership filters work the
// same on postgres and sqlite.
type CatalogItem struct {
	ObjectID        string                      `json:"objectID" gorm:"primaryKey;size:128"`
	ComponentType   string                      `json:"component_type" gorm:"size:16;not null;index"`
	Brand           string                      `json:"brand" gorm:"size:64;index"`
	Model           string                      `json:"model" gorm:"size:256"`
	PriceUSD        float64                     `json:"price_usd" gorm:"type:numeric(10,2);default:0"`
	PerformanceTier string                      `json:"performance_tier" gorm:"size:32"`
	Socket          string                      `json:"socket,omitempty" gorm:"size:32;index"`
	SocketSupport   string                      `json:"-" gorm:"size:512"`
	MemoryType      string                      `json:"-" gorm:"size:64"`
	FormFactor      string                      `json:"form_factor,omitempty" gorm:"size:32"`
	FormFactors     string                      `json:"-" gorm:"size:256"`
	Tags            datatypes.JSONSlice[string] `json:"compatibility_tags" gorm:"type:jsonb"`
	Attributes      datatypes.JSON              `json:"attributes" gorm:"type:jsonb;not null"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

// JoinFacet encodes a value set as "|a|b|" for LIKE membership queries.
func JoinFacet(values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// NewCatalogItem flattens a component into its catalog row.
func NewCatalogItem(c Component) (*CatalogItem, error) {
	info := c.Info()
	if info.ObjectID == "" {
		return nil, fmt.Errorf("catalog item: objectID is required")
	}
	info.ComponentType = c.Kind().String()
	attrs, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("catalog item %s: %w", info.ObjectID, err)
	}
	item := &CatalogItem{
		ObjectID:        info.ObjectID,
		ComponentType:   info.ComponentType,
		Brand:           info.Brand,
		Model:           info.Model,
		PriceUSD:        info.PriceUSD,
		PerformanceTier: info.PerformanceTier,
		Tags:            datatypes.JSONSlice[string](info.CompatibilityTags),
		Attributes:      datatypes.JSON(attrs),
	}
	switch v := c.(type) {
	case *CPU:
		item.Socket = v.Socket
		item.MemoryType = JoinFacet(v.MemoryType...)
	case *Motherboard:
		item.Socket = v.Socket
		item.MemoryType = JoinFacet(v.MemoryType...)
		item.FormFactor = v.FormFactor
	case *RAM:
		item.MemoryType = JoinFacet(v.MemoryType)
	case *Case:
		item.FormFactors = JoinFacet(v.FormFactorSupport...)
	case *Cooler:
		item.SocketSupport = JoinFacet(v.SocketSupport...)
	}
	return item, nil
}

// Component rebuilds the typed component from the stored attributes.
func (i *CatalogItem) Component() (Component, error) {
	kind, err := ParseKind(i.ComponentType)
	if err != nil {
		return nil, err
	}
	return DecodeComponentAs(kind, []byte(i.Attributes))
}
