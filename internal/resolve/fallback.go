package resolve

import (
	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

// FallbackCategoryByType finds a replacement leaf when a record's category
// direction conflicts with the inferred direction at upload time. A sibling
// of the current category is preferred over any other leaf of the needed
// direction.
func FallbackCategoryByType(snap entity.Snapshot, currentID string, needed constants.Direction) (string, bool) {
	current, hasCurrent := snap.CategoryByID(currentID)
	leaves := snap.LeafCategories()

	if hasCurrent {
		for _, leaf := range leaves {
			if leaf.ID == currentID {
				continue
			}
			if leaf.ParentID == current.ParentID && leaf.Direction == needed {
				return leaf.ID, true
			}
		}
	}
	for _, leaf := range leaves {
		if leaf.ID != currentID && leaf.Direction == needed {
			return leaf.ID, true
		}
	}
	return "", false
}
