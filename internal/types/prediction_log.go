package types

import (
	"time"

	"github.com/google/uuid"
)

// PredictionLog is one served prediction, persisted for the aggregate
// statistics endpoint. Inputs are stored as given (null when absent).
type PredictionLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Glucose     *float64  `gorm:"column:glucose" json:"glucose"`
	Insulin     *float64  `gorm:"column:insulin" json:"insulin"`
	BMI         *float64  `gorm:"column:bmi" json:"bmi"`
	Age         *float64  `gorm:"column:age" json:"age"`
	Probability float64   `gorm:"not null;column:probability" json:"probability"`
	Label       string    `gorm:"not null;column:label" json:"label"`
	ModelKey    string    `gorm:"not null;column:model_key" json:"model_key"`
	Cached      bool      `gorm:"not null;column:cached" json:"cached"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (PredictionLog) TableName() string {
	return "prediction_log"
}
