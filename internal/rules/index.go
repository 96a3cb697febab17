// Package rules wraps the sorting-rules dataset behind a searchable,
// browsable index. The dataset is fetched once and cached for the life
// of the view.
package rules

import (
	"slices"
	"strings"

	"github.com/samroche/recyco/pkg/domain"
)

// Index is an in-memory view over a RuleSet.
type Index struct {
	rules domain.RuleSet
	bins  []string
}

// NewIndex caches the dataset. Bin order is stable: playable bins first,
// any extra colors after, alphabetically.
func NewIndex(rules domain.RuleSet) *Index {
	var bins []string
	for _, bin := range domain.PlayableBins {
		if _, ok := rules[bin]; ok {
			bins = append(bins, bin)
		}
	}
	var extra []string
	for bin := range rules {
		if !slices.Contains(bins, bin) {
			extra = append(extra, bin)
		}
	}
	slices.Sort(extra)
	return &Index{rules: rules, bins: append(bins, extra...)}
}

// Bins lists the bin colors in display order.
func (ix *Index) Bins() []string {
	return slices.Clone(ix.bins)
}

// ItemsFor returns every item filed under the given bin color.
func (ix *Index) ItemsFor(bin string) []domain.Item {
	return slices.Clone(ix.rules[bin])
}

// Len returns the total number of reference items.
func (ix *Index) Len() int {
	n := 0
	for _, items := range ix.rules {
		n += len(items)
	}
	return n
}

// Search scans every category and returns the items whose keyword set
// contains the query. The contract is exact membership, compared
// case-insensitively: "Bouteille" matches the keyword "bouteille",
// "bout" matches nothing. An empty query matches nothing. Result order
// follows Bins() order, then the item order within each bin.
func (ix *Index) Search(query string) []domain.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var results []domain.Item
	for _, bin := range ix.bins {
		for _, item := range ix.rules[bin] {
			for _, kw := range item.Keywords {
				if strings.ToLower(kw) == query {
					results = append(results, item)
					break
				}
			}
		}
	}
	return results
}
