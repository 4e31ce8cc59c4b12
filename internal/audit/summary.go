package audit

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"ipocket/internal/model"
)

// AssetState is the snapshot of an IP asset's auditable fields, with project
// and host already rendered as labels.
type AssetState struct {
	Type         model.IPAssetType
	ProjectLabel string
	HostLabel    string
	Notes        string
	Tags         []string
}

// SummarizeAssetChanges renders an update diff as "field: old -> new"
// segments joined by "; ". Returns "No changes recorded." when nothing
// differs.
func SummarizeAssetChanges(before, after AssetState) string {
	var changes []string
	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("type: %s -> %s", before.Type, after.Type))
	}
	if before.ProjectLabel != after.ProjectLabel {
		changes = append(changes, fmt.Sprintf("project: %s -> %s", before.ProjectLabel, after.ProjectLabel))
	}
	if before.HostLabel != after.HostLabel {
		changes = append(changes, fmt.Sprintf("host: %s -> %s", before.HostLabel, after.HostLabel))
	}
	if before.Notes != after.Notes {
		changes = append(changes, fmt.Sprintf("notes: %s -> %s", before.Notes, after.Notes))
	}
	if !sameTagSet(before.Tags, after.Tags) {
		changes = append(changes, fmt.Sprintf("tags: %s -> %s", tagLabel(before.Tags), tagLabel(after.Tags)))
	}
	if len(changes) == 0 {
		return "No changes recorded."
	}
	return strings.Join(changes, "; ")
}

func sameTagSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func tagLabel(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

// ProjectLabel renders a project id for audit summaries
func ProjectLabel(db *gorm.DB, projectID *int) string {
	if projectID == nil {
		return "Unassigned"
	}
	var project model.Project
	if err := db.Select("name").First(&project, *projectID).Error; err != nil {
		return fmt.Sprintf("Unknown (%d)", *projectID)
	}
	return project.Name
}

// HostLabel renders a host id for audit summaries
func HostLabel(db *gorm.DB, hostID *int) string {
	if hostID == nil {
		return "Unassigned"
	}
	var host model.Host
	if err := db.Select("name").First(&host, *hostID).Error; err != nil {
		return fmt.Sprintf("Unknown (%d)", *hostID)
	}
	return host.Name
}
