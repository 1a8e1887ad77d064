// Package search provides the two interchangeable product lookup strategies
// used by the catalog search endpoint. Both do case-insensitive prefix
// matching on a chosen field; they differ in cost profile and result order,
// and that ordering difference is part of the contract.
package search

import (
	"sort"
	"strings"

	"go-pos-dashboard/internal/model"
)

// Field keys accepted by both strategies.
const (
	KeyName     = "name"
	KeyID       = "id"
	KeyCategory = "category"
)

func fieldValue(p model.Product, key string) string {
	switch key {
	case KeyID:
		return p.ID.String()
	case KeyCategory:
		if p.Category != nil {
			return p.Category.Name
		}
		return ""
	default:
		return p.Name
	}
}

func matches(p model.Product, key, query string) bool {
	return strings.HasPrefix(strings.ToLower(fieldValue(p, key)), strings.ToLower(query))
}

// Linear scans the list once and returns all prefix matches in their
// original relative order. O(n).
func Linear(products []model.Product, key, query string) []model.Product {
	results := []model.Product{}
	for _, p := range products {
		if matches(p, key, query) {
			results = append(results, p)
		}
	}
	return results
}

// Binary sorts a copy of the list by the field, bisects to any one prefix
// match, then expands left and right while the prefix still holds. Results
// come back in sorted-key order, which generally differs from Linear's.
// The sort dominates, so this is O(n log n) despite the name.
func Binary(products []model.Product, key, query string) []model.Product {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(fieldValue(sorted[i], key)) < strings.ToLower(fieldValue(sorted[j], key))
	})

	q := strings.ToLower(query)
	low, high := 0, len(sorted)-1
	idx := -1
	for low <= high {
		mid := (low + high) / 2
		midVal := strings.ToLower(fieldValue(sorted[mid], key))
		if strings.HasPrefix(midVal, q) {
			idx = mid
			break
		} else if midVal < q {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	if idx == -1 {
		return []model.Product{}
	}

	lo := idx
	for lo > 0 && matches(sorted[lo-1], key, query) {
		lo--
	}
	hi := idx
	for hi < len(sorted)-1 && matches(sorted[hi+1], key, query) {
		hi++
	}
	return sorted[lo : hi+1]
}
