// Package asset manages IP asset records: creation, filtered listing,
// updates, archiving, and tag assignment.
package asset

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ipocket/internal/audit"
	"ipocket/internal/ipcalc"
	"ipocket/internal/model"
)

// ErrDuplicateIP is returned when the address is already tracked.
var ErrDuplicateIP = errors.New("ip address already exists")

// ErrUnknownHost is returned when a referenced host id does not exist.
var ErrUnknownHost = errors.New("host does not exist")

// ErrUnknownProject is returned when a referenced project id does not exist.
var ErrUnknownProject = errors.New("project does not exist")

// Service handles IP asset operations
type Service struct {
	db    *gorm.DB
	audit *audit.Service
}

// NewService creates a new asset service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, audit: audit.NewService(db)}
}

// CreateInput carries the fields for a new asset
type CreateInput struct {
	IPAddress string
	Type      model.IPAssetType
	ProjectID *int
	HostID    *int
	Notes     string
	Tags      []string

	// AutoHostForBMC creates or reuses a "server_<ip>" host when a BMC
	// address arrives without one, so the OS side can pair up later.
	AutoHostForBMC bool
}

// Create validates and stores a new IP asset
func (s *Service) Create(actor audit.Actor, in CreateInput) (*model.IPAsset, error) {
	value, err := ipcalc.ParseAddr(in.IPAddress)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.IPAsset{}).Where("ip_address = ?", in.IPAddress).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateIP, in.IPAddress)
	}

	if err := s.checkReferences(in.ProjectID, in.HostID); err != nil {
		return nil, err
	}

	asset := model.IPAsset{
		IPAddress: in.IPAddress,
		IPValue:   value,
		Type:      in.Type,
		ProjectID: in.ProjectID,
		HostID:    in.HostID,
		Notes:     in.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.AutoHostForBMC && in.Type == model.IPAssetTypeBMC && asset.HostID == nil {
			hostID, err := ensureAutoHost(tx, in.IPAddress)
			if err != nil {
				return err
			}
			asset.HostID = &hostID
		}

		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		if len(in.Tags) > 0 {
			if _, err := setTags(tx, asset.ID, in.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionCreate,
		TargetType:  model.AuditTargetIPAsset,
		TargetID:    asset.ID,
		TargetLabel: asset.IPAddress,
		Changes: fmt.Sprintf("Created IP asset (type=%s, project=%s, host=%s, notes=%s)",
			asset.Type,
			audit.ProjectLabel(s.db, asset.ProjectID),
			audit.HostLabel(s.db, asset.HostID),
			asset.Notes),
		Details: map[string]any{
			"type":       asset.Type,
			"project_id": asset.ProjectID,
			"host_id":    asset.HostID,
			"tags":       in.Tags,
		},
	}); err != nil {
		return nil, err
	}

	return s.Get(asset.ID)
}

// ensureAutoHost finds or creates the bookkeeping host for a BMC address
func ensureAutoHost(tx *gorm.DB, ip string) (int, error) {
	hostName := "server_" + ip

	var host model.Host
	err := tx.Where("name = ?", hostName).First(&host).Error
	if err == nil {
		return host.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	host = model.Host{Name: hostName}
	if err := tx.Create(&host).Error; err != nil {
		return 0, err
	}
	return host.ID, nil
}

func (s *Service) checkReferences(projectID, hostID *int) error {
	if projectID != nil {
		var count int64
		if err := s.db.Model(&model.Project{}).Where("id = ?", *projectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %d", ErrUnknownProject, *projectID)
		}
	}
	if hostID != nil {
		var count int64
		if err := s.db.Model(&model.Host{}).Where("id = ?", *hostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %d", ErrUnknownHost, *hostID)
		}
	}
	return nil
}

// Get returns an asset with relations, or nil when it does not exist
func (s *Service) Get(id int) (*model.IPAsset, error) {
	var asset model.IPAsset
	err := s.db.Preload("Project").Preload("Host").Preload("Tags").First(&asset, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetByIP returns an asset by address, or nil when it does not exist
func (s *Service) GetByIP(ip string) (*model.IPAsset, error) {
	var asset model.IPAsset
	err := s.db.Preload("Project").Preload("Host").Preload("Tags").
		Where("ip_address = ?", ip).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateInput carries the updatable fields; nil pointers leave a field
// untouched, except ProjectID/HostID where Clear* explicitly detaches.
type UpdateInput struct {
	Type         *model.IPAssetType
	ProjectID    *int
	ClearProject bool
	HostID       *int
	ClearHost    bool
	Notes        *string
	Tags         []string
	SetTags      bool
}

// Update mutates an asset and records the field diff; returns nil when the
// asset does not exist
func (s *Service) Update(actor audit.Actor, id int, in UpdateInput) (*model.IPAsset, error) {
	existing, err := s.Get(id)
	if err != nil || existing == nil {
		return nil, err
	}

	before := audit.AssetState{
		Type:         existing.Type,
		ProjectLabel: audit.ProjectLabel(s.db, existing.ProjectID),
		HostLabel:    audit.HostLabel(s.db, existing.HostID),
		Notes:        existing.Notes,
		Tags:         tagNames(existing.Tags),
	}

	if in.Type != nil {
		existing.Type = *in.Type
	}
	if in.ClearProject {
		existing.ProjectID = nil
	} else if in.ProjectID != nil {
		existing.ProjectID = in.ProjectID
	}
	if in.ClearHost {
		existing.HostID = nil
	} else if in.HostID != nil {
		existing.HostID = in.HostID
	}
	if in.Notes != nil {
		existing.Notes = *in.Notes
	}

	if err := s.checkReferences(existing.ProjectID, existing.HostID); err != nil {
		return nil, err
	}

	var tagsAfter []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"type":       existing.Type,
			"project_id": existing.ProjectID,
			"host_id":    existing.HostID,
			"notes":      existing.Notes,
		}
		if err := tx.Model(&model.IPAsset{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if in.SetTags {
			names, err := setTags(tx, id, in.Tags)
			if err != nil {
				return err
			}
			tagsAfter = names
		} else {
			tagsAfter = before.Tags
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after := audit.AssetState{
		Type:         existing.Type,
		ProjectLabel: audit.ProjectLabel(s.db, existing.ProjectID),
		HostLabel:    audit.HostLabel(s.db, existing.HostID),
		Notes:        existing.Notes,
		Tags:         tagsAfter,
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionUpdate,
		TargetType:  model.AuditTargetIPAsset,
		TargetID:    id,
		TargetLabel: existing.IPAddress,
		Changes:     audit.SummarizeAssetChanges(before, after),
	}); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// SetArchived flips the soft-delete flag; returns false when the asset does
// not exist
func (s *Service) SetArchived(actor audit.Actor, id int, archived bool) (bool, error) {
	existing, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := s.db.Model(&model.IPAsset{}).Where("id = ?", id).
		Update("archived", archived).Error; err != nil {
		return false, err
	}

	action := model.AuditActionArchive
	if !archived {
		action = model.AuditActionUnarchive
	}
	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      action,
		TargetType:  model.AuditTargetIPAsset,
		TargetID:    id,
		TargetLabel: existing.IPAddress,
		Changes:     fmt.Sprintf("archived: %t -> %t", existing.Archived, archived),
	}); err != nil {
		return false, err
	}

	return true, nil
}

// Delete removes an asset permanently; returns false when it did not exist
func (s *Service) Delete(actor audit.Actor, id int) (bool, error) {
	existing, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ip_asset_id = ?", id).Delete(&model.IPAssetTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.IPAsset{}, id).Error
	})
	if err != nil {
		return false, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionDelete,
		TargetType:  model.AuditTargetIPAsset,
		TargetID:    id,
		TargetLabel: existing.IPAddress,
		Changes:     fmt.Sprintf("Deleted IP asset %s (type=%s)", existing.IPAddress, existing.Type),
	}); err != nil {
		return false, err
	}

	return true, nil
}

// setTags replaces an asset's tag set, creating unknown tags on the fly,
// and returns the normalized tag names
func setTags(tx *gorm.DB, assetID int, names []string) ([]string, error) {
	normalized := normalizeTagNames(names)

	if err := tx.Where("ip_asset_id = ?", assetID).Delete(&model.IPAssetTag{}).Error; err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return []string{}, nil
	}

	for _, name := range normalized {
		var tag model.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		if err := tx.Create(&model.IPAssetTag{IPAssetID: assetID, TagID: tag.ID}).Error; err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

// normalizeTagNames trims, drops empties, and dedupes case-insensitively
// while keeping the first spelling seen
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if out == nil {
		return []string{}
	}
	return out
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
