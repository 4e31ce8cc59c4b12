// Package host manages server records and their OS/BMC address pairing.
package host

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ipocket/internal/audit"
	"ipocket/internal/model"
)

// ErrUnknownVendor is returned when a referenced vendor name does not exist.
var ErrUnknownVendor = errors.New("vendor does not exist")

// ErrDuplicateName is returned when the host name is already taken.
var ErrDuplicateName = errors.New("host name already exists")

// Service handles host operations
type Service struct {
	db    *gorm.DB
	audit *audit.Service
}

// NewService creates a new host service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, audit: audit.NewService(db)}
}

// HostItem is the listing row with aggregate IP information
type HostItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Notes        string `json:"notes"`
	Vendor       string `json:"vendor"`
	ProjectCount int    `json:"project_count"`
	ProjectName  string `json:"project_name"`
	ProjectColor string `json:"project_color"`
	IPCount      int    `json:"ip_count"`
	OSIPs        string `json:"os_ips"`
	BMCIPs       string `json:"bmc_ips"`
}

func (s *Service) resolveVendorID(vendorName string) (*int, error) {
	if vendorName == "" {
		return nil, nil
	}
	var vendor model.Vendor
	err := s.db.Where("name = ?", vendorName).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVendor, vendorName)
	}
	if err != nil {
		return nil, err
	}
	return &vendor.ID, nil
}

// Create stores a new host, resolving the vendor by name
func (s *Service) Create(actor audit.Actor, name, notes, vendorName string) (*model.Host, error) {
	vendorID, err := s.resolveVendorID(vendorName)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Host{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	host := model.Host{Name: name, Notes: notes, VendorID: vendorID}
	if err := s.db.Create(&host).Error; err != nil {
		return nil, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionCreate,
		TargetType:  model.AuditTargetHost,
		TargetID:    host.ID,
		TargetLabel: host.Name,
		Changes:     fmt.Sprintf("Created host %s (vendor=%s)", name, vendorName),
	}); err != nil {
		return nil, err
	}

	return &host, nil
}

// Get returns a host with its vendor, or nil when it does not exist
func (s *Service) Get(id int) (*model.Host, error) {
	var host model.Host
	err := s.db.Preload("Vendor").First(&host, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// GetByName returns a host by name, or nil when it does not exist
func (s *Service) GetByName(name string) (*model.Host, error) {
	var host model.Host
	err := s.db.Preload("Vendor").Where("name = ?", name).First(&host).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// Update rewrites mutable host fields; returns nil when the host does not
// exist
func (s *Service) Update(actor audit.Actor, id int, name, notes, vendorName string) (*model.Host, error) {
	existing, err := s.Get(id)
	if err != nil || existing == nil {
		return nil, err
	}

	vendorID, err := s.resolveVendorID(vendorName)
	if err != nil {
		return nil, err
	}

	var changes []string
	if existing.Name != name {
		changes = append(changes, fmt.Sprintf("name: %s -> %s", existing.Name, name))
	}
	if existing.Notes != notes {
		changes = append(changes, fmt.Sprintf("notes: %s -> %s", existing.Notes, notes))
	}

	updates := map[string]interface{}{
		"name":      name,
		"notes":     notes,
		"vendor_id": vendorID,
	}
	if err := s.db.Model(&model.Host{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	summary := "No changes recorded."
	if len(changes) > 0 {
		summary = strings.Join(changes, "; ")
	}
	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionUpdate,
		TargetType:  model.AuditTargetHost,
		TargetID:    id,
		TargetLabel: name,
		Changes:     summary,
	}); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete detaches the host's assets and removes it; returns false when it
// did not exist
func (s *Service) Delete(actor audit.Actor, id int) (bool, error) {
	existing, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.IPAsset{}).Where("host_id = ?", id).
			Update("host_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Host{}, id).Error
	})
	if err != nil {
		return false, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionDelete,
		TargetType:  model.AuditTargetHost,
		TargetID:    id,
		TargetLabel: existing.Name,
		Changes:     fmt.Sprintf("Deleted host %s", existing.Name),
	}); err != nil {
		return false, err
	}

	return true, nil
}

// ListWithIPCounts returns hosts with aggregate address information,
// name-ordered. A pageSize of 0 disables pagination.
func (s *Service) ListWithIPCounts(page, pageSize int) ([]HostItem, int64, error) {
	var total int64
	if err := s.db.Model(&model.Host{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hosts []model.Host
	query := s.db.Preload("Vendor").Order("name ASC")
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}
	if err := query.Find(&hosts).Error; err != nil {
		return nil, 0, err
	}

	items := make([]HostItem, 0, len(hosts))
	for _, h := range hosts {
		item := HostItem{ID: h.ID, Name: h.Name, Notes: h.Notes}
		if h.Vendor != nil {
			item.Vendor = h.Vendor.Name
		}

		var assets []model.IPAsset
		if err := s.db.Preload("Project").
			Where("host_id = ? AND archived = ?", h.ID, false).
			Order("ip_value ASC").
			Find(&assets).Error; err != nil {
			return nil, 0, err
		}

		projects := make(map[int]model.Project)
		var osIPs, bmcIPs []string
		for _, a := range assets {
			if a.ProjectID != nil && a.Project != nil {
				projects[*a.ProjectID] = *a.Project
			}
			switch a.Type {
			case model.IPAssetTypeOS:
				osIPs = append(osIPs, a.IPAddress)
			case model.IPAssetTypeBMC:
				bmcIPs = append(bmcIPs, a.IPAddress)
			}
		}

		item.IPCount = len(assets)
		item.ProjectCount = len(projects)
		item.OSIPs = strings.Join(osIPs, ", ")
		item.BMCIPs = strings.Join(bmcIPs, ", ")

		// First project by name, matching how the listing labels hosts
		for _, p := range projects {
			if item.ProjectName == "" || p.Name < item.ProjectName {
				item.ProjectName = p.Name
				item.ProjectColor = p.Color
			}
		}

		items = append(items, item)
	}

	return items, total, nil
}

// LinkedAssetsGrouped returns a host's active assets split into OS, BMC,
// and other, ascending by address
func (s *Service) LinkedAssetsGrouped(hostID int) (map[string][]model.IPAsset, error) {
	var assets []model.IPAsset
	err := s.db.
		Where("host_id = ? AND archived = ?", hostID, false).
		Order("ip_value ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	grouped := map[string][]model.IPAsset{
		"os":    {},
		"bmc":   {},
		"other": {},
	}
	for _, a := range assets {
		switch a.Type {
		case model.IPAssetTypeOS:
			grouped["os"] = append(grouped["os"], a)
		case model.IPAssetTypeBMC:
			grouped["bmc"] = append(grouped["bmc"], a)
		default:
			grouped["other"] = append(grouped["other"], a)
		}
	}
	return grouped, nil
}
