// Package metadata manages the lookup entities assets reference: projects,
// vendors, and tags.
package metadata

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ipocket/internal/model"
)

// ErrDuplicateName is returned when the entity name is already taken.
var ErrDuplicateName = errors.New("name already exists")

// ErrInUse is returned when deleting an entity that assets still reference.
var ErrInUse = errors.New("still referenced by assets")

// Service handles project, vendor, and tag operations
type Service struct {
	db *gorm.DB
}

// NewService creates a new metadata service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListProjects returns all projects ordered by name
func (s *Service) ListProjects() ([]model.Project, error) {
	var projects []model.Project
	err := s.db.Order("name ASC").Find(&projects).Error
	return projects, err
}

// CreateProject stores a new project
func (s *Service) CreateProject(name, description, color string) (*model.Project, error) {
	var count int64
	if err := s.db.Model(&model.Project{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	project := model.Project{Name: name, Description: description, Color: color}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project unless assets still reference it
func (s *Service) DeleteProject(id int) (bool, error) {
	var refs int64
	if err := s.db.Model(&model.IPAsset{}).Where("project_id = ?", id).Count(&refs).Error; err != nil {
		return false, err
	}
	if refs > 0 {
		return false, fmt.Errorf("%w: %d assets", ErrInUse, refs)
	}

	result := s.db.Delete(&model.Project{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListVendors returns all vendors ordered by name
func (s *Service) ListVendors() ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := s.db.Order("name ASC").Find(&vendors).Error
	return vendors, err
}

// CreateVendor stores a new vendor
func (s *Service) CreateVendor(name string) (*model.Vendor, error) {
	var count int64
	if err := s.db.Model(&model.Vendor{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	vendor := model.Vendor{Name: name}
	if err := s.db.Create(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// DeleteVendor removes a vendor unless hosts still reference it
func (s *Service) DeleteVendor(id int) (bool, error) {
	var refs int64
	if err := s.db.Model(&model.Host{}).Where("vendor_id = ?", id).Count(&refs).Error; err != nil {
		return false, err
	}
	if refs > 0 {
		return false, fmt.Errorf("%w: %d hosts", ErrInUse, refs)
	}

	result := s.db.Delete(&model.Vendor{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListTags returns all tags ordered by name
func (s *Service) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// CreateTag stores a new tag with an optional display color. Tags created
// implicitly through asset assignment carry no color; this is the only path
// that sets one.
func (s *Service) CreateTag(name, color string) (*model.Tag, error) {
	var count int64
	if err := s.db.Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	tag := model.Tag{Name: name, Color: color}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag rewrites a tag's color; returns nil when the tag does not exist
func (s *Service) UpdateTag(id int, color string) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tag.Color = color
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes a tag and its asset links
func (s *Service) DeleteTag(id int) (bool, error) {
	var deleted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.IPAssetTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
