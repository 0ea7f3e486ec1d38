package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 通用 JSON 列类型（网关回执等不透明数据）
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// IngredientSnapshot 配料快照条目：下单时冻结，之后不再回读配料表
type IngredientSnapshot struct {
	IngredientID uint   `json:"ingredient_id"`
	Name         string `json:"name"`
	PricePerExtra Money `json:"price_per_extra"`
}

// IngredientSnapshotList 配料快照列表（JSON 列）
type IngredientSnapshotList []IngredientSnapshot

// Value 实现 driver.Valuer 接口
func (l IngredientSnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(IngredientSnapshotList{})
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *IngredientSnapshotList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientSnapshotList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}
