package model

// Tag represents a free-form label attached to IP assets
type Tag struct {
	BaseModel
	Name  string `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(16)" json:"color"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}

// IPAssetTag is the join row linking assets and tags
type IPAssetTag struct {
	IPAssetID int `gorm:"primaryKey;autoIncrement:false" json:"ip_asset_id"`
	TagID     int `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
}

// TableName specifies the table name for IPAssetTag model
func (IPAssetTag) TableName() string {
	return "ip_asset_tags"
}
