package resolution

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/FACorreiaa/invoice-ledger/internal/reference"
)

// searchDocument is the indexed form of one reference entry.
type searchDocument struct {
	ItemCode      string `json:"item_code"`
	GLCode        string `json:"gl_code"`
	GLDescription string `json:"gl_description"`
}

// SearchResult is a reference entry matched by a lookup query.
type SearchResult struct {
	Entry reference.Entry
	Score float64
}

// SearchIndex is an in-memory full-text index over the reference table,
// backing the interactive lookup command. Codes match as exact terms;
// descriptions match word by word with typo tolerance.
type SearchIndex struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewSearchIndex creates an empty in-memory index.
func NewSearchIndex() (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	// Descriptions get word-level search, codes exact-term search.
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("item_code", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("gl_code", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("gl_description", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// IndexTable indexes every entry of the table in one batch, replacing any
// entry already indexed under the same item code.
func (si *SearchIndex) IndexTable(table *reference.Table) error {
	si.mu.Lock()
	defer si.mu.Unlock()

	batch := si.index.NewBatch()
	for _, e := range table.Entries() {
		doc := searchDocument{
			ItemCode:      e.ItemCode,
			GLCode:        e.GLCode,
			GLDescription: e.GLDescription,
		}
		if err := batch.Index(e.ItemCode, doc); err != nil {
			return fmt.Errorf("indexing entry %s: %w", e.ItemCode, err)
		}
	}
	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("writing index batch: %w", err)
	}
	return nil
}

// Search matches the query against descriptions (with one edit of typo
// tolerance) and against item and GL codes as exact terms, so both
// "orange juice" and "JUC15" find their entries.
func (si *SearchIndex) Search(query string, limit int) ([]SearchResult, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)

	term := strings.ToUpper(strings.TrimSpace(query))
	codeQuery := bleve.NewTermQuery(term)
	codeQuery.SetField("item_code")
	glQuery := bleve.NewTermQuery(term)
	glQuery.SetField("gl_code")

	searchRequest := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(matchQuery, codeQuery, glQuery))
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := si.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return convertResults(searchResults), nil
}

// SearchPrefix autocompletes item codes.
func (si *SearchIndex) SearchPrefix(prefix string, limit int) ([]SearchResult, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	prefixQuery := bleve.NewPrefixQuery(strings.ToUpper(strings.TrimSpace(prefix)))
	prefixQuery.SetField("item_code")

	searchRequest := bleve.NewSearchRequest(prefixQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := si.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("prefix search failed: %w", err)
	}
	return convertResults(searchResults), nil
}

// DocumentCount reports how many entries are indexed.
func (si *SearchIndex) DocumentCount() (uint64, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()
	return si.index.DocCount()
}

// Close releases the index.
func (si *SearchIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Close()
}

func convertResults(searchResults *bleve.SearchResult) []SearchResult {
	results := make([]SearchResult, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		e := reference.Entry{ItemCode: hit.ID}
		if v, ok := hit.Fields["item_code"].(string); ok {
			e.ItemCode = v
		}
		if v, ok := hit.Fields["gl_code"].(string); ok {
			e.GLCode = v
		}
		if v, ok := hit.Fields["gl_description"].(string); ok {
			e.GLDescription = v
		}
		results = append(results, SearchResult{Entry: e, Score: hit.Score})
	}
	return results
}
