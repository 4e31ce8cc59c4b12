package model

// UserRole represents the permission level of a user
type UserRole string

const (
	UserRoleViewer UserRole = "Viewer"
	UserRoleEditor UserRole = "Editor"
	UserRoleAdmin  UserRole = "Admin"
)

// User represents an operator account
type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:enum('Viewer','Editor','Admin');default:'Viewer'" json:"role"`
	IsActive     bool     `gorm:"type:tinyint;default:1" json:"is_active"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// CanEdit reports whether the role is allowed to mutate data
func (r UserRole) CanEdit() bool {
	return r == UserRoleEditor || r == UserRoleAdmin
}
