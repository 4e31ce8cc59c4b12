package iprange

import (
	"time"
)

// RangeItem is the API representation of a managed range
type RangeItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CIDR      string    `json:"cidr"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UtilizationItem summarizes capacity usage for one range
type UtilizationItem struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	CIDR               string  `json:"cidr"`
	Notes              string  `json:"notes"`
	Total              uint64  `json:"total"`
	TotalUsable        uint64  `json:"total_usable"`
	Used               int64   `json:"used"`
	Free               int64   `json:"free"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// TagInfo carries the tag fields shown in breakdowns
type TagInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Entry statuses
const (
	StatusUsed = "used"
	StatusFree = "free"
)

// BreakdownEntry is one address slot in a range breakdown. Used entries
// carry owning metadata; free entries have everything nulled out.
type BreakdownEntry struct {
	IPAddress         string    `json:"ip_address"`
	Status            string    `json:"status"`
	AssetID           *int      `json:"asset_id"`
	HostID            *int      `json:"host_id"`
	ProjectID         *int      `json:"project_id"`
	ProjectName       string    `json:"project_name"`
	ProjectColor      string    `json:"project_color"`
	ProjectUnassigned bool      `json:"project_unassigned"`
	AssetType         string    `json:"asset_type"`
	Notes             string    `json:"notes"`
	HostPair          string    `json:"host_pair"`
	Tags              []TagInfo `json:"tags"`

	// sort key, not part of the payload
	value uint32
}

// Breakdown is the full per-address view of one range
type Breakdown struct {
	Range       RangeItem        `json:"ip_range"`
	Addresses   []BreakdownEntry `json:"addresses"`
	Used        int              `json:"used"`
	Free        int              `json:"free"`
	TotalUsable int              `json:"total_usable"`
}
