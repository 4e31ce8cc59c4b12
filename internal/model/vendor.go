package model

// Vendor represents a hardware vendor
type Vendor struct {
	BaseModel
	Name string `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
