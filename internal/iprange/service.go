// Package iprange manages IP ranges and computes their utilization and
// per-address breakdown from the active asset set.
package iprange

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"ipocket/internal/audit"
	"ipocket/internal/ipcalc"
	"ipocket/internal/model"
)

// ErrDuplicateCIDR is returned when a range with the same canonical CIDR
// already exists.
var ErrDuplicateCIDR = errors.New("cidr already exists")

// Service handles IP range operations
type Service struct {
	db    *gorm.DB
	store Store
	audit *audit.Service
}

// NewService creates a new IP range service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		store: NewStore(db),
		audit: audit.NewService(db),
	}
}

// Create validates and canonicalizes the CIDR, then stores the range
func (s *Service) Create(actor audit.Actor, name, cidr, notes string) (*model.IPRange, error) {
	normalized, err := ipcalc.Normalize(cidr)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.IPRange{}).Where("cidr = ?", normalized).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCIDR, normalized)
	}

	ipRange := model.IPRange{Name: name, CIDR: normalized, Notes: notes}
	if err := s.db.Create(&ipRange).Error; err != nil {
		return nil, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionCreate,
		TargetType:  model.AuditTargetIPRange,
		TargetID:    ipRange.ID,
		TargetLabel: normalized,
		Changes:     fmt.Sprintf("Created IP range %s (%s)", name, normalized),
	}); err != nil {
		return nil, err
	}

	return &ipRange, nil
}

// List returns all ranges ordered by name
func (s *Service) List() ([]model.IPRange, error) {
	var ranges []model.IPRange
	if err := s.db.Order("name ASC").Find(&ranges).Error; err != nil {
		return nil, err
	}
	return ranges, nil
}

// Get returns a range by id, or nil when it does not exist
func (s *Service) Get(id int) (*model.IPRange, error) {
	var ipRange model.IPRange
	err := s.db.First(&ipRange, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ipRange, nil
}

// Update rewrites a range; returns nil when the range does not exist
func (s *Service) Update(actor audit.Actor, id int, name, cidr, notes string) (*model.IPRange, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	normalized, err := ipcalc.Normalize(cidr)
	if err != nil {
		return nil, err
	}

	if normalized != existing.CIDR {
		var count int64
		if err := s.db.Model(&model.IPRange{}).
			Where("cidr = ? AND id <> ?", normalized, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCIDR, normalized)
		}
	}

	var changes []string
	if existing.Name != name {
		changes = append(changes, fmt.Sprintf("name: %s -> %s", existing.Name, name))
	}
	if existing.CIDR != normalized {
		changes = append(changes, fmt.Sprintf("cidr: %s -> %s", existing.CIDR, normalized))
	}
	if existing.Notes != notes {
		changes = append(changes, fmt.Sprintf("notes: %s -> %s", existing.Notes, notes))
	}

	existing.Name = name
	existing.CIDR = normalized
	existing.Notes = notes
	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}

	summary := "No changes recorded."
	if len(changes) > 0 {
		summary = strings.Join(changes, "; ")
	}
	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionUpdate,
		TargetType:  model.AuditTargetIPRange,
		TargetID:    existing.ID,
		TargetLabel: existing.CIDR,
		Changes:     summary,
	}); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a range; returns false when it did not exist
func (s *Service) Delete(actor audit.Actor, id int) (bool, error) {
	existing, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := s.db.Delete(&model.IPRange{}, id).Error; err != nil {
		return false, err
	}

	if err := s.audit.Record(audit.Entry{
		Actor:       actor,
		Action:      model.AuditActionDelete,
		TargetType:  model.AuditTargetIPRange,
		TargetID:    id,
		TargetLabel: existing.CIDR,
		Changes:     fmt.Sprintf("Deleted IP range %s (%s)", existing.Name, existing.CIDR),
	}); err != nil {
		return false, err
	}

	return true, nil
}

// Utilization computes the capacity summary for every range, name-ordered
func (s *Service) Utilization() ([]UtilizationItem, error) {
	ranges, err := s.List()
	if err != nil {
		return nil, err
	}
	return computeUtilization(ranges, s.store)
}

// Breakdown computes the full per-address view of one range, or nil when
// the range does not exist
func (s *Service) Breakdown(rangeID int) (*Breakdown, error) {
	ipRange, err := s.Get(rangeID)
	if err != nil {
		return nil, err
	}
	if ipRange == nil {
		return nil, nil
	}
	return computeBreakdown(*ipRange, s.store)
}

// computeUtilization derives the summary for each range from distinct
// active address counts within the range bounds.
func computeUtilization(ranges []model.IPRange, store Store) ([]UtilizationItem, error) {
	items := make([]UtilizationItem, 0, len(ranges))
	for _, ipRange := range ranges {
		network, err := ipcalc.Parse(ipRange.CIDR)
		if err != nil {
			// Stored CIDRs are validated at write time; a parse failure here
			// is corrupt data and must surface.
			return nil, fmt.Errorf("stored cidr %q for range %d: %w", ipRange.CIDR, ipRange.ID, err)
		}

		used, err := store.CountDistinctActiveInBounds(network.First(), network.Last())
		if err != nil {
			return nil, err
		}

		totalUsable := network.UsableCount()
		free := int64(totalUsable) - used
		if free < 0 {
			free = 0
		}
		percent := 0.0
		if totalUsable > 0 {
			percent = float64(used) / float64(totalUsable) * 100.0
		}

		items = append(items, UtilizationItem{
			ID:                 ipRange.ID,
			Name:               ipRange.Name,
			CIDR:               ipRange.CIDR,
			Notes:              ipRange.Notes,
			Total:              network.NumAddresses(),
			TotalUsable:        totalUsable,
			Used:               used,
			Free:               free,
			UtilizationPercent: percent,
		})
	}
	return items, nil
}

// computeBreakdown merges the used and free address sets of one range into
// a single ascending list.
func computeBreakdown(ipRange model.IPRange, store Store) (*Breakdown, error) {
	network, err := ipcalc.Parse(ipRange.CIDR)
	if err != nil {
		return nil, fmt.Errorf("stored cidr %q for range %d: %w", ipRange.CIDR, ipRange.ID, err)
	}

	rows, err := store.ActiveAssetsInBounds(network.First(), network.Last())
	if err != nil {
		return nil, err
	}

	pairs, err := store.HostPairAddresses(dedupeHostIDs(rows))
	if err != nil {
		return nil, err
	}

	used := make([]BreakdownEntry, 0, len(rows))
	usedValues := make(map[uint32]struct{}, len(rows))
	for _, row := range rows {
		usedValues[row.IPValue] = struct{}{}

		entry := BreakdownEntry{
			IPAddress:         row.IPAddress,
			Status:            StatusUsed,
			AssetID:           intPtr(row.ID),
			HostID:            row.HostID,
			ProjectID:         row.ProjectID,
			ProjectName:       row.ProjectName,
			ProjectColor:      row.ProjectColor,
			ProjectUnassigned: row.ProjectName == "",
			AssetType:         string(row.Type),
			Notes:             row.Notes,
			HostPair:          hostPairFor(row, pairs),
			Tags:              row.Tags,
			value:             row.IPValue,
		}
		if entry.ProjectColor == "" {
			entry.ProjectColor = model.DefaultProjectColor
		}
		used = append(used, entry)
	}

	// Free slots come from standard host enumeration, which skips network
	// and broadcast regardless of prefix length. For /31 and /32 this means
	// no free entries even though UsableCount is non-zero; the mismatch is
	// long-standing behavior the UI depends on.
	hosts := network.Hosts()
	free := make([]BreakdownEntry, 0, len(hosts))
	for _, value := range hosts {
		if _, taken := usedValues[value]; taken {
			continue
		}
		free = append(free, BreakdownEntry{
			IPAddress:         ipcalc.Uint32ToAddr(value),
			Status:            StatusFree,
			ProjectColor:      model.DefaultProjectColor,
			ProjectUnassigned: true,
			HostPair:          "",
			Tags:              []TagInfo{},
			value:             value,
		})
	}

	addresses := make([]BreakdownEntry, 0, len(used)+len(free))
	addresses = append(addresses, used...)
	addresses = append(addresses, free...)
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].value < addresses[j].value
	})

	return &Breakdown{
		Range: RangeItem{
			ID:        ipRange.ID,
			Name:      ipRange.Name,
			CIDR:      ipRange.CIDR,
			Notes:     ipRange.Notes,
			CreatedAt: ipRange.CreatedAt,
			UpdatedAt: ipRange.UpdatedAt,
		},
		Addresses:   addresses,
		Used:        len(used),
		Free:        len(free),
		TotalUsable: len(hosts),
	}, nil
}

// hostPairFor resolves the sibling addresses of the opposite type for OS
// and BMC assets sharing a host.
func hostPairFor(row AssetRow, pairs map[int]PairIPs) string {
	if row.HostID == nil {
		return ""
	}
	pair, ok := pairs[*row.HostID]
	if !ok {
		return ""
	}
	switch row.Type {
	case model.IPAssetTypeOS:
		return strings.Join(pair.BMC, ", ")
	case model.IPAssetTypeBMC:
		return strings.Join(pair.OS, ", ")
	}
	return ""
}

func intPtr(v int) *int {
	return &v
}
