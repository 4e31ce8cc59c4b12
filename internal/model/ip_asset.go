package model

// IPAssetType represents the role of an IP asset
type IPAssetType string

const (
	IPAssetTypeOS    IPAssetType = "OS"
	IPAssetTypeBMC   IPAssetType = "BMC"
	IPAssetTypeVM    IPAssetType = "VM"
	IPAssetTypeVIP   IPAssetType = "VIP"
	IPAssetTypeOther IPAssetType = "OTHER"
)

// NormalizeIPAssetType maps legacy type labels onto the current set.
// Historical imports used IPMI_ILO/IPMI_iLO for what is now BMC.
func NormalizeIPAssetType(value string) (IPAssetType, bool) {
	switch value {
	case "IPMI_ILO", "IPMI_iLO":
		return IPAssetTypeBMC, true
	case string(IPAssetTypeOS), string(IPAssetTypeBMC), string(IPAssetTypeVM),
		string(IPAssetTypeVIP), string(IPAssetTypeOther):
		return IPAssetType(value), true
	}
	return "", false
}

// IPAsset represents a tracked IPv4 address.
// IPValue holds the address as a big-endian uint32 so range queries can use
// plain integer comparisons.
type IPAsset struct {
	BaseModel
	IPAddress string      `gorm:"type:varchar(32);uniqueIndex;not null" json:"ip_address"`
	IPValue   uint32      `gorm:"not null;index" json:"ip_value"`
	Type      IPAssetType `gorm:"type:enum('OS','BMC','VM','VIP','OTHER');not null;index" json:"type"`
	ProjectID *int        `gorm:"index" json:"project_id"`
	HostID    *int        `gorm:"index" json:"host_id"`
	Notes     string      `gorm:"type:varchar(1024)" json:"notes"`
	Archived  bool        `gorm:"type:tinyint;default:0;index" json:"archived"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Host    *Host    `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Tags    []Tag    `gorm:"many2many:ip_asset_tags;" json:"tags,omitempty"`
}

// TableName specifies the table name for IPAsset model
func (IPAsset) TableName() string {
	return "ip_assets"
}
