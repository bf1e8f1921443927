package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// One uploaded food photo; analysis results are stored as opaque JSON
// against the record so the pipeline output survives as-is.
type Photo struct {
	gorm.Model
	UserID   uint
	Filepath string `gorm:"not null"`
	Analysis string `gorm:"type:text"`
}

func (p *Photo) GetAnalysis() map[string]interface{} {
	if p.Analysis == "" {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(p.Analysis), &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

func (p *Photo) SetAnalysis(data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p.Analysis = string(b)
	return nil
}
