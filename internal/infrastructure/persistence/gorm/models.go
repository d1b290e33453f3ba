// Package gorm provides GORM model definitions and repositories for the
// catalog and accepted-plan stores
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CatalogItemModel represents the GORM model for catalog items.
// Position preserves the stored catalog order, which the engine's
// rotation-based search depends on.
type CatalogItemModel struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Category    string  `gorm:"type:varchar(50);not null;index"`
	Carbs       float64 `gorm:"not null;default:0"`
	Sodium      float64 `gorm:"not null;default:0"`
	Fluid       float64 `gorm:"not null;default:0"`
	ServingSize string  `gorm:"type:varchar(100)"`
	Position    int     `gorm:"not null;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// AcceptedPlanModel represents the GORM model for accepted fueling plans
type AcceptedPlanModel struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`
	StrategyID   string     `gorm:"type:varchar(50);not null;index"`
	StrategyName string     `gorm:"type:varchar(100);not null"`
	Description  string     `gorm:"type:text"`
	Entries      EntrySlice `gorm:"type:json"`

	TotalCarbs  float64
	TotalSodium float64
	TotalFluid  float64
	CarbsPct    float64
	SodiumPct   float64
	FluidPct    float64
	Score       int `gorm:"index"`

	TargetCarbs  int
	TargetSodium int
	TargetFluid  int
	TargetHours  float64

	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name
func (AcceptedPlanModel) TableName() string {
	return "accepted_plans"
}

// EntryRecord is the serialized form of one plan entry
type EntryRecord struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	ServingSize string  `json:"serving_size"`
	Carbs       float64 `json:"carbs_g"`
	Sodium      float64 `json:"sodium_mg"`
	Fluid       float64 `json:"fluid_ml"`
}

// EntrySlice handles JSON serialization of plan entries
type EntrySlice []EntryRecord

// Scan implements the sql.Scanner interface
func (e *EntrySlice) Scan(value interface{}) error {
	if value == nil {
		*e = EntrySlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("cannot scan %T into EntrySlice", value)
	}
}

// Value implements the driver.Valuer interface
func (e EntrySlice) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
