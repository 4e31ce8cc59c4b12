package model

// IPRange represents a managed IPv4 network.
// CIDR is always stored in canonical network form (host bits zeroed); the
// range service validates and normalizes it before writes.
type IPRange struct {
	BaseModel
	Name  string `gorm:"type:varchar(128);not null" json:"name"`
	CIDR  string `gorm:"type:varchar(32);uniqueIndex;not null" json:"cidr"`
	Notes string `gorm:"type:varchar(1024)" json:"notes"`
}

// TableName specifies the table name for IPRange model
func (IPRange) TableName() string {
	return "ip_ranges"
}
