package model

// DefaultProjectColor is used when a project has no display color and for
// unassigned addresses in range breakdowns.
const DefaultProjectColor = "#9ca3af"

// Project represents a project that IP assets can be assigned to
type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(512)" json:"description"`
	Color       string `gorm:"type:varchar(16)" json:"color"`
}

// TableName specifies the table name for Project model
func (Project) TableName() string {
	return "projects"
}
