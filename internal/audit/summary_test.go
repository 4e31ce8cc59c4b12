package audit

import (
	"testing"

	"ipocket/internal/model"
)

func TestSummarizeAssetChanges_NoChanges(t *testing.T) {
	state := AssetState{
		Type:         model.IPAssetTypeOS,
		ProjectLabel: "infra",
		HostLabel:    "server-1",
		Notes:        "rack 4",
		Tags:         []string{"prod"},
	}

	got := SummarizeAssetChanges(state, state)
	if got != "No changes recorded." {
		t.Errorf("Expected no-changes sentinel, got %q", got)
	}
}

func TestSummarizeAssetChanges_SingleField(t *testing.T) {
	before := AssetState{Type: model.IPAssetTypeOS, ProjectLabel: "Unassigned", HostLabel: "Unassigned"}
	after := before
	after.Type = model.IPAssetTypeBMC

	got := SummarizeAssetChanges(before, after)
	if got != "type: OS -> BMC" {
		t.Errorf("Unexpected summary: %q", got)
	}
}

func TestSummarizeAssetChanges_MultipleFields(t *testing.T) {
	before := AssetState{
		Type:         model.IPAssetTypeOS,
		ProjectLabel: "Unassigned",
		HostLabel:    "server-1",
		Notes:        "",
	}
	after := AssetState{
		Type:         model.IPAssetTypeOS,
		ProjectLabel: "infra",
		HostLabel:    "server-2",
		Notes:        "migrated",
	}

	got := SummarizeAssetChanges(before, after)
	want := "project: Unassigned -> infra; host: server-1 -> server-2; notes:  -> migrated"
	if got != want {
		t.Errorf("Summary mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestSummarizeAssetChanges_Tags(t *testing.T) {
	before := AssetState{Tags: []string{"prod", "web"}}
	after := AssetState{Tags: []string{"prod"}}

	got := SummarizeAssetChanges(before, after)
	if got != "tags: prod, web -> prod" {
		t.Errorf("Unexpected summary: %q", got)
	}
}

func TestSummarizeAssetChanges_TagOrderIgnored(t *testing.T) {
	before := AssetState{Tags: []string{"web", "prod"}}
	after := AssetState{Tags: []string{"prod", "web"}}

	got := SummarizeAssetChanges(before, after)
	if got != "No changes recorded." {
		t.Errorf("Tag order should not count as a change, got %q", got)
	}
}

func TestSummarizeAssetChanges_EmptyTagsLabel(t *testing.T) {
	before := AssetState{Tags: []string{"prod"}}
	after := AssetState{}

	got := SummarizeAssetChanges(before, after)
	if got != "tags: prod -> none" {
		t.Errorf("Unexpected summary: %q", got)
	}
}
