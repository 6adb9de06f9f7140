package category

import "sort"

// TreeNode is a category with its resolved children and product count.
type TreeNode struct {
	Category
	ProductCount int         `json:"product_count"`
	Children     []*TreeNode `json:"children"`
}

// BuildTree converts a flat category list into a forest. Each node's children
// are exactly the categories whose ParentID equals the node's ID, ordered by
// SortOrder then Name. counts maps category ID to product count and may be
// nil. The input is not modified; building is deterministic and side-effect
// free.
//
// A category whose parent is missing from the input is treated as a root so
// that flattening the result always reproduces the original set.
func BuildTree(cats []Category, counts map[string]int) []*TreeNode {
	nodes := make(map[string]*TreeNode, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &TreeNode{Category: c, ProductCount: counts[c.ID], Children: []*TreeNode{}}
	}

	var roots []*TreeNode
	for _, c := range cats {
		n := nodes[c.ID]
		if c.ParentID == "" || nodes[c.ParentID] == nil {
			roots = append(roots, n)
			continue
		}
		parent := nodes[c.ParentID]
		parent.Children = append(parent.Children, n)
	}

	var sortSiblings func(ns []*TreeNode)
	sortSiblings = func(ns []*TreeNode) {
		sort.SliceStable(ns, func(i, j int) bool {
			if ns[i].SortOrder != ns[j].SortOrder {
				return ns[i].SortOrder < ns[j].SortOrder
			}
			return ns[i].Name < ns[j].Name
		})
		for _, n := range ns {
			sortSiblings(n.Children)
		}
	}
	sortSiblings(roots)
	if roots == nil {
		roots = []*TreeNode{}
	}
	return roots
}

// Flatten returns all categories of the forest in depth-first order.
func Flatten(roots []*TreeNode) []Category {
	var out []Category
	var walk func(ns []*TreeNode)
	walk = func(ns []*TreeNode) {
		for _, n := range ns {
			out = append(out, n.Category)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}
