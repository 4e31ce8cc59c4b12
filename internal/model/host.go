package model

// Host represents a physical or virtual server that IP assets attach to
type Host struct {
	BaseModel
	Name     string `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
	Notes    string `gorm:"type:varchar(512)" json:"notes"`
	VendorID *int   `gorm:"index" json:"vendor_id"`

	// Relations
	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// TableName specifies the table name for Host model
func (Host) TableName() string {
	return "hosts"
}
