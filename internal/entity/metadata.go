package entity

import (
	"github.com/hanwen-zhu/billsnap/constants"
)

// Category is one node of the remote bookkeeping category forest. A node
// with no children is a leaf; only leaves are valid posting targets.
type Category struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Direction constants.Direction `json:"direction"`
	ParentID  string              `json:"parent_id,omitempty"`
}

// Account mirrors the category parent/child leaf constraint.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// Tag is flat; GroupID is informational only.
type Tag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id,omitempty"`
}

// Snapshot is the current metadata state fetched from the structured store
// before resolution runs. Read-only inside the core.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Accounts   []Account  `json:"accounts"`
	Tags       []Tag      `json:"tags"`
}

// IsLeafCategory reports whether id names a category with no children.
func (s *Snapshot) IsLeafCategory(id string) bool {
	found := false
	for _, c := range s.Categories {
		if c.ID == id {
			found = true
		}
		if c.ParentID == id {
			return false
		}
	}
	return found
}

// IsLeafAccount reports whether id names an account with no children.
func (s *Snapshot) IsLeafAccount(id string) bool {
	found := false
	for _, a := range s.Accounts {
		if a.ID == id {
			found = true
		}
		if a.ParentID == id {
			return false
		}
	}
	return found
}

// LeafCategories returns every category with no children, in snapshot order.
func (s *Snapshot) LeafCategories() []Category {
	children := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.ParentID != "" {
			children[c.ParentID] = true
		}
	}
	leaves := make([]Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if !children[c.ID] {
			leaves = append(leaves, c)
		}
	}
	return leaves
}

// CategoryByID returns the category with the given id, if present.
func (s *Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
