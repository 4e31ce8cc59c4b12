package iprange

import (
	"reflect"
	"testing"

	"ipocket/internal/ipcalc"
	"ipocket/internal/model"
)

// fakeStore serves a fixed asset set, filtering by bounds like the real
// store does.
type fakeStore struct {
	rows  []AssetRow
	pairs map[int]PairIPs
}

func (f *fakeStore) ActiveAssetsInBounds(first, last uint32) ([]AssetRow, error) {
	var out []AssetRow
	for _, row := range f.rows {
		if row.IPValue >= first && row.IPValue <= last {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStore) HostPairAddresses(hostIDs []int) (map[int]PairIPs, error) {
	out := make(map[int]PairIPs)
	for _, id := range hostIDs {
		if pair, ok := f.pairs[id]; ok {
			out[id] = pair
		}
	}
	return out, nil
}

func (f *fakeStore) CountDistinctActiveInBounds(first, last uint32) (int64, error) {
	seen := make(map[uint32]struct{})
	for _, row := range f.rows {
		if row.IPValue >= first && row.IPValue <= last {
			seen[row.IPValue] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func mustValue(t *testing.T, ip string) uint32 {
	t.Helper()
	v, err := ipcalc.ParseAddr(ip)
	if err != nil {
		t.Fatalf("ParseAddr(%q) failed: %v", ip, err)
	}
	return v
}

func assetRow(t *testing.T, id int, ip string, assetType model.IPAssetType, hostID *int) AssetRow {
	t.Helper()
	return AssetRow{
		ID:        id,
		IPAddress: ip,
		IPValue:   mustValue(t, ip),
		Type:      assetType,
		HostID:    hostID,
	}
}

func TestUtilization_SingleUsedAddress(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "192.168.10.5", model.IPAssetTypeOS, nil),
	}}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "office", CIDR: "192.168.10.0/24"}}

	items, err := computeUtilization(ranges, store)
	if err != nil {
		t.Fatalf("computeUtilization() failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(items))
	}

	got := items[0]
	if got.Total != 256 {
		t.Errorf("total = %d, want 256", got.Total)
	}
	if got.TotalUsable != 254 {
		t.Errorf("total_usable = %d, want 254", got.TotalUsable)
	}
	if got.Used != 1 {
		t.Errorf("used = %d, want 1", got.Used)
	}
	if got.Free != 253 {
		t.Errorf("free = %d, want 253", got.Free)
	}
}

func TestUtilization_Slash31FullyUsed(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "10.0.0.0", model.IPAssetTypeOther, nil),
		assetRow(t, 2, "10.0.0.1", model.IPAssetTypeOther, nil),
	}}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "p2p", CIDR: "10.0.0.0/31"}}

	items, err := computeUtilization(ranges, store)
	if err != nil {
		t.Fatalf("computeUtilization() failed: %v", err)
	}

	got := items[0]
	if got.TotalUsable != 2 || got.Used != 2 || got.Free != 0 {
		t.Errorf("got usable=%d used=%d free=%d, want 2/2/0", got.TotalUsable, got.Used, got.Free)
	}
	if got.UtilizationPercent != 100.0 {
		t.Errorf("utilization_percent = %f, want 100", got.UtilizationPercent)
	}
}

func TestUtilization_Slash32(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "10.0.0.5", model.IPAssetTypeVIP, nil),
	}}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "vip", CIDR: "10.0.0.5/32"}}

	items, err := computeUtilization(ranges, store)
	if err != nil {
		t.Fatalf("computeUtilization() failed: %v", err)
	}

	got := items[0]
	if got.Total != 1 || got.TotalUsable != 1 || got.Used != 1 || got.Free != 0 {
		t.Errorf("got total=%d usable=%d used=%d free=%d, want 1/1/1/0",
			got.Total, got.TotalUsable, got.Used, got.Free)
	}
}

// Network and broadcast assignments count as used, so used can exceed
// total_usable; free must floor at zero instead of going negative.
func TestUtilization_FreeFlooredAtZero(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "192.168.20.0", model.IPAssetTypeOther, nil),
		assetRow(t, 2, "192.168.20.1", model.IPAssetTypeOther, nil),
		assetRow(t, 3, "192.168.20.2", model.IPAssetTypeOther, nil),
		assetRow(t, 4, "192.168.20.3", model.IPAssetTypeOther, nil),
	}}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "tiny", CIDR: "192.168.20.0/30"}}

	items, err := computeUtilization(ranges, store)
	if err != nil {
		t.Fatalf("computeUtilization() failed: %v", err)
	}

	got := items[0]
	if got.Used != 4 {
		t.Errorf("used = %d, want 4", got.Used)
	}
	if got.Free != 0 {
		t.Errorf("free = %d, want 0 (floored)", got.Free)
	}
}

func TestUtilization_DistinctAddresses(t *testing.T) {
	// The same address appearing twice in the store must count once.
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "192.168.10.5", model.IPAssetTypeOS, nil),
		assetRow(t, 2, "192.168.10.5", model.IPAssetTypeOther, nil),
	}}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "office", CIDR: "192.168.10.0/24"}}

	items, err := computeUtilization(ranges, store)
	if err != nil {
		t.Fatalf("computeUtilization() failed: %v", err)
	}
	if items[0].Used != 1 {
		t.Errorf("used = %d, want 1 (distinct)", items[0].Used)
	}
}

func TestUtilization_MalformedStoredCIDR(t *testing.T) {
	store := &fakeStore{}
	ranges := []model.IPRange{{BaseModel: model.BaseModel{ID: 1}, Name: "bad", CIDR: "not-a-cidr"}}

	if _, err := computeUtilization(ranges, store); err == nil {
		t.Error("computeUtilization() should fail on a malformed stored CIDR")
	}
}

func TestBreakdown_HostPairing(t *testing.T) {
	hostID := 7
	store := &fakeStore{
		rows: []AssetRow{
			assetRow(t, 1, "192.168.20.1", model.IPAssetTypeOS, &hostID),
			assetRow(t, 2, "192.168.20.3", model.IPAssetTypeBMC, &hostID),
		},
		pairs: map[int]PairIPs{
			7: {OS: []string{"192.168.20.1"}, BMC: []string{"192.168.20.3"}},
		},
	}
	ipRange := model.IPRange{BaseModel: model.BaseModel{ID: 1}, Name: "rack", CIDR: "192.168.20.0/30"}

	result, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}

	if result.Used != 2 || result.Free != 1 || result.TotalUsable != 2 {
		t.Errorf("got used=%d free=%d usable=%d, want 2/1/2", result.Used, result.Free, result.TotalUsable)
	}

	if len(result.Addresses) != 3 {
		t.Fatalf("Expected 3 addresses, got %d", len(result.Addresses))
	}

	// Ascending order: .1 used, .2 free, .3 used
	wantOrder := []struct {
		ip     string
		status string
		pair   string
	}{
		{"192.168.20.1", StatusUsed, "192.168.20.3"},
		{"192.168.20.2", StatusFree, ""},
		{"192.168.20.3", StatusUsed, "192.168.20.1"},
	}
	for i, want := range wantOrder {
		got := result.Addresses[i]
		if got.IPAddress != want.ip {
			t.Errorf("addresses[%d].ip = %s, want %s", i, got.IPAddress, want.ip)
		}
		if got.Status != want.status {
			t.Errorf("addresses[%d].status = %s, want %s", i, got.Status, want.status)
		}
		if got.HostPair != want.pair {
			t.Errorf("addresses[%d].host_pair = %q, want %q", i, got.HostPair, want.pair)
		}
	}
}

func TestBreakdown_UnassignedProjectDefaults(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "10.1.0.1", model.IPAssetTypeVM, nil),
	}}
	ipRange := model.IPRange{BaseModel: model.BaseModel{ID: 1}, Name: "lab", CIDR: "10.1.0.0/29"}

	result, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}

	entry := result.Addresses[0]
	if entry.Status != StatusUsed {
		t.Fatalf("first entry should be used, got %s", entry.Status)
	}
	if !entry.ProjectUnassigned {
		t.Error("entry without project should be marked unassigned")
	}
	if entry.ProjectColor != model.DefaultProjectColor {
		t.Errorf("project_color = %s, want default", entry.ProjectColor)
	}

	for _, free := range result.Addresses[1:] {
		if free.Status != StatusFree {
			continue
		}
		if !free.ProjectUnassigned || free.ProjectColor != model.DefaultProjectColor {
			t.Errorf("free entry %s should carry unassigned defaults", free.IPAddress)
		}
		if free.Tags == nil || len(free.Tags) != 0 {
			t.Errorf("free entry %s should carry an empty tag list", free.IPAddress)
		}
	}
}

// For /31 and /32 the free enumeration is empty while the utilization
// summary still reports usable capacity. Both sides are pinned here so the
// divergence does not get "fixed" by accident.
func TestBreakdown_EdgePrefixAsymmetry(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "10.0.0.5", model.IPAssetTypeVIP, nil),
	}}
	ipRange := model.IPRange{BaseModel: model.BaseModel{ID: 1}, Name: "vip", CIDR: "10.0.0.5/32"}

	result, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}

	if result.TotalUsable != 0 {
		t.Errorf("breakdown total_usable = %d, want 0 (standard host enumeration)", result.TotalUsable)
	}
	if result.Used != 1 || result.Free != 0 {
		t.Errorf("got used=%d free=%d, want 1/0", result.Used, result.Free)
	}

	network, _ := ipcalc.Parse(ipRange.CIDR)
	if network.UsableCount() != 1 {
		t.Error("summary-side usable count for /32 should stay 1")
	}
}

func TestBreakdown_Idempotent(t *testing.T) {
	hostID := 3
	store := &fakeStore{
		rows: []AssetRow{
			assetRow(t, 1, "192.168.20.1", model.IPAssetTypeOS, &hostID),
			assetRow(t, 2, "192.168.20.3", model.IPAssetTypeBMC, &hostID),
		},
		pairs: map[int]PairIPs{
			3: {OS: []string{"192.168.20.1"}, BMC: []string{"192.168.20.3"}},
		},
	}
	ipRange := model.IPRange{BaseModel: model.BaseModel{ID: 1}, Name: "rack", CIDR: "192.168.20.0/30"}

	first, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}
	second, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated breakdowns with an unchanged store should be identical")
	}
}

func TestBreakdown_CountMatchesHostEnumeration(t *testing.T) {
	store := &fakeStore{rows: []AssetRow{
		assetRow(t, 1, "192.168.10.10", model.IPAssetTypeOS, nil),
	}}
	ipRange := model.IPRange{BaseModel: model.BaseModel{ID: 1}, Name: "office", CIDR: "192.168.10.0/24"}

	result, err := computeBreakdown(ipRange, store)
	if err != nil {
		t.Fatalf("computeBreakdown() failed: %v", err)
	}

	// 254 host slots; the used address occupies one of them.
	if len(result.Addresses) != 254 {
		t.Errorf("address list length = %d, want 254", len(result.Addresses))
	}
	if result.Used+result.Free != 254 {
		t.Errorf("used+free = %d, want 254", result.Used+result.Free)
	}
}
