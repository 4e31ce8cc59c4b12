package iprange

import (
	"sort"

	"gorm.io/gorm"

	"ipocket/internal/model"
)

// AssetRow is an active address record with the metadata the breakdown
// needs, as returned by the store.
type AssetRow struct {
	ID           int
	IPAddress    string
	IPValue      uint32
	Type         model.IPAssetType
	HostID       *int
	ProjectID    *int
	ProjectName  string
	ProjectColor string
	Notes        string
	Tags         []TagInfo
}

// PairIPs lists a host's active OS and BMC addresses, ascending.
type PairIPs struct {
	OS  []string
	BMC []string
}

// Store is the address-store contract the utilization engine computes
// against. Bounds are inclusive uint32 address values.
type Store interface {
	// ActiveAssetsInBounds returns every non-archived asset whose address
	// falls within [first, last], with project and tag metadata joined.
	ActiveAssetsInBounds(first, last uint32) ([]AssetRow, error)

	// HostPairAddresses returns, per host id, all active OS and BMC
	// addresses linked to that host (not restricted to any range).
	HostPairAddresses(hostIDs []int) (map[int]PairIPs, error)

	// CountDistinctActiveInBounds counts distinct non-archived address
	// values within [first, last].
	CountDistinctActiveInBounds(first, last uint32) (int64, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the gorm-backed address store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ActiveAssetsInBounds(first, last uint32) ([]AssetRow, error) {
	var assets []model.IPAsset
	err := s.db.
		Preload("Project").
		Preload("Tags").
		Where("archived = ? AND ip_value BETWEEN ? AND ?", false, first, last).
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	rows := make([]AssetRow, 0, len(assets))
	for _, asset := range assets {
		row := AssetRow{
			ID:        asset.ID,
			IPAddress: asset.IPAddress,
			IPValue:   asset.IPValue,
			Type:      asset.Type,
			HostID:    asset.HostID,
			ProjectID: asset.ProjectID,
			Notes:     asset.Notes,
		}
		if asset.Project != nil {
			row.ProjectName = asset.Project.Name
			row.ProjectColor = asset.Project.Color
		}
		for _, tag := range asset.Tags {
			row.Tags = append(row.Tags, TagInfo{Name: tag.Name, Color: tag.Color})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *gormStore) HostPairAddresses(hostIDs []int) (map[int]PairIPs, error) {
	result := make(map[int]PairIPs)
	if len(hostIDs) == 0 {
		return result, nil
	}

	var assets []model.IPAsset
	err := s.db.
		Select("host_id", "type", "ip_address", "ip_value").
		Where("archived = ? AND host_id IN ? AND type IN ?",
			false, hostIDs, []model.IPAssetType{model.IPAssetTypeOS, model.IPAssetTypeBMC}).
		Order("ip_value ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	for _, asset := range assets {
		if asset.HostID == nil {
			continue
		}
		pair := result[*asset.HostID]
		switch asset.Type {
		case model.IPAssetTypeOS:
			pair.OS = append(pair.OS, asset.IPAddress)
		case model.IPAssetTypeBMC:
			pair.BMC = append(pair.BMC, asset.IPAddress)
		}
		result[*asset.HostID] = pair
	}
	return result, nil
}

func (s *gormStore) CountDistinctActiveInBounds(first, last uint32) (int64, error) {
	var count int64
	err := s.db.Model(&model.IPAsset{}).
		Where("archived = ? AND ip_value BETWEEN ? AND ?", false, first, last).
		Distinct("ip_value").
		Count(&count).Error
	return count, err
}

func dedupeHostIDs(rows []AssetRow) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, row := range rows {
		if row.HostID == nil {
			continue
		}
		if _, ok := seen[*row.HostID]; ok {
			continue
		}
		seen[*row.HostID] = struct{}{}
		ids = append(ids, *row.HostID)
	}
	sort.Ints(ids)
	return ids
}
