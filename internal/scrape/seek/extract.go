package seek

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seekwatch/internal/domain"
)

// RawItem is one unnormalized listing as produced by a single extraction
// strategy, before sentinel defaults are filled in.
type RawItem struct {
	ID          string
	Title       string
	Advertiser  string
	Location    string
	Salary      string
	ListingDate string
	Href        string // link as seen on the page; relative, absolute or empty
}

// strategy extracts raw listings from a parsed results page. ok is false when
// the strategy found nothing usable, in which case the next one is tried.
type strategy interface {
	Name() string
	Extract(doc *goquery.Document) (items []RawItem, ok bool)
}

// Extractor turns a fetched search-results page into normalized jobs. The
// embedded client-state blob is authoritative when present since it carries
// fields the markup often omits; scanning the markup is the fallback.
type Extractor struct {
	origin     string
	strategies []strategy
}

func NewExtractor(origin string) *Extractor {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	return &Extractor{
		origin: origin,
		strategies: []strategy{
			reduxStrategy{},
			domStrategy{},
		},
	}
}

// Extract never fails: an unparseable page or a mangled state blob degrades
// to zero listings and a log line, not an error.
func (e *Extractor) Extract(body string) []domain.Job {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		log.Printf("[seek] unparseable page: %v", err)
		return nil
	}

	for _, s := range e.strategies {
		items, ok := s.Extract(doc)
		if !ok {
			continue
		}
		log.Printf("[seek] %s extraction found %d listings", s.Name(), len(items))
		jobs := make([]domain.Job, 0, len(items))
		for _, it := range items {
			jobs = append(jobs, e.normalize(it))
		}
		return jobs
	}

	log.Printf("[seek] no listings found on page")
	return nil
}
