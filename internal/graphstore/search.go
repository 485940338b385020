package graphstore

import (
	"context"
	"strings"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// SearchNodes matches the query against every node in the current snapshot,
// structural types included. A node matches when its id or label contains
// the query as a case-insensitive substring. An empty or whitespace-only
// query clears the stored search state without scanning.
//
// The scan is local and synchronous; result order is the snapshot order and
// not contractual.
func (s *Store) SearchNodes(query string) []model.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		s.searchQuery = ""
		s.searchResults = nil
		s.isSearching = false
		return nil
	}

	s.isSearching = true
	needle := strings.ToLower(query)
	results := make([]model.SearchResult, 0)
	for i := range s.nodes {
		n := &s.nodes[i]
		if !strings.Contains(strings.ToLower(n.ID), needle) &&
			!strings.Contains(strings.ToLower(n.Data.Label), needle) {
			continue
		}
		results = append(results, model.SearchResult{
			ID:         n.ID,
			Type:       n.EffectiveType().String(),
			Label:      n.Data.Label,
			Properties: n.Data.Properties,
		})
	}
	s.searchQuery = query
	s.searchResults = results
	s.isSearching = false

	out := make([]model.SearchResult, len(results))
	copy(out, results)
	return out
}

// ClearSearch discards the stored query and results.
func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = ""
	s.searchResults = nil
	s.isSearching = false
}

// SearchQuery returns the stored query string.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SearchResults returns a copy of the stored results.
func (s *Store) SearchResults() []model.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.searchResults == nil {
		return nil
	}
	out := make([]model.SearchResult, len(s.searchResults))
	copy(out, s.searchResults)
	return out
}

// SelectSearchResult re-centers the graph on the chosen result: it clears
// the search state, then reloads with the result as the new center node.
// Clearing happens as a side effect of selection, not of the search itself.
func (s *Store) SelectSearchResult(ctx context.Context, result model.SearchResult) error {
	s.mu.Lock()
	s.searchQuery = ""
	s.searchResults = nil
	s.isSearching = false
	s.mu.Unlock()

	return s.LoadGraph(ctx, result.ID, 0)
}
