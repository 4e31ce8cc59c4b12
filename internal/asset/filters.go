package asset

import (
	"strings"

	"gorm.io/gorm"

	"ipocket/internal/model"
)

// ListFilter narrows the asset listing. Zero values mean "no filter";
// ArchivedOnly flips the listing to the archive view.
type ListFilter struct {
	ProjectID         *int
	ProjectUnassigned bool
	Type              *model.IPAssetType
	HostUnassigned    bool
	QueryText         string
	TagNames          []string
	ArchivedOnly      bool
	Page              int
	PageSize          int
}

// List returns assets matching the filter ordered by numeric address, with
// the total match count for pagination
func (s *Service) List(filter ListFilter) ([]model.IPAsset, int64, error) {
	query := s.applyFilter(s.db.Model(&model.IPAsset{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var assets []model.IPAsset
	err := s.applyFilter(s.db.Preload("Project").Preload("Host").Preload("Tags"), filter).
		Order("ip_value ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

func (s *Service) applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	query = query.Where("ip_assets.archived = ?", filter.ArchivedOnly)

	if filter.ProjectUnassigned {
		query = query.Where("ip_assets.project_id IS NULL")
	} else if filter.ProjectID != nil {
		query = query.Where("ip_assets.project_id = ?", *filter.ProjectID)
	}

	if filter.Type != nil {
		query = query.Where("ip_assets.type = ?", *filter.Type)
	}

	if filter.HostUnassigned {
		query = query.Where("ip_assets.host_id IS NULL")
	}

	if filter.QueryText != "" {
		like := "%" + strings.ToLower(filter.QueryText) + "%"
		query = query.Where("LOWER(ip_assets.ip_address) LIKE ? OR LOWER(COALESCE(ip_assets.notes, '')) LIKE ?", like, like)
	}

	tagNames := normalizeTagNames(filter.TagNames)
	if len(tagNames) > 0 {
		lowered := make([]string, 0, len(tagNames))
		for _, name := range tagNames {
			lowered = append(lowered, strings.ToLower(name))
		}
		query = query.Where(
			"EXISTS (SELECT 1 FROM ip_asset_tags JOIN tags ON tags.id = ip_asset_tags.tag_id"+
				" WHERE ip_asset_tags.ip_asset_id = ip_assets.id AND LOWER(tags.name) IN ?)",
			lowered,
		)
	}

	return query
}
