package monitor

import (
	"log"
	"strings"

	"seekwatch/internal/domain"
	"seekwatch/internal/scrape/util"
	"seekwatch/internal/state"
)

// Counts summarizes one reconcile pass for the run log. Rejections are
// bookkeeping, not errors.
type Counts struct {
	Found            int
	Unique           int
	AlreadySeen      int
	RejectedLocation int
	RejectedExcluded int
	New              int
}

// Reconcile collapses the batch to one record per id (last occurrence wins,
// empty ids dropped), skips records already notified in earlier runs,
// applies the location and exclusion filters, and marks survivors as seen.
func Reconcile(candidates []domain.Job, seen *state.SeenSet, locationFilter string, exclude []string) ([]domain.Job, Counts) {
	counts := Counts{Found: len(candidates)}

	order := make([]string, 0, len(candidates))
	byID := make(map[string]domain.Job, len(candidates))
	for _, j := range candidates {
		if strings.TrimSpace(j.ID) == "" {
			continue
		}
		if _, ok := byID[j.ID]; !ok {
			order = append(order, j.ID)
		}
		byID[j.ID] = j
	}
	counts.Unique = len(order)

	locTokens := util.SplitList(locationFilter)

	var out []domain.Job
	for _, id := range order {
		j := byID[id]
		if seen.Has(j.ID) {
			counts.AlreadySeen++
			continue
		}
		if !passesLocation(j, locTokens) {
			counts.RejectedLocation++
			log.Printf("[filter] skipped (location) id=%s loc=%q", j.ID, j.Location)
			continue
		}
		if kw := excludedBy(j, exclude); kw != "" {
			counts.RejectedExcluded++
			log.Printf("[filter] skipped (excluded: %s) id=%s title=%q", kw, j.ID, j.Title)
			continue
		}
		seen.Add(j.ID)
		out = append(out, j)
		counts.New++
	}
	return out, counts
}

// passesLocation requires a real (non-sentinel) location containing at least
// one configured token. An empty filter matches everything.
func passesLocation(j domain.Job, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	if j.HasSentinelLocation() {
		return false
	}
	loc := strings.ToLower(j.Location)
	for _, t := range tokens {
		if strings.Contains(loc, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// excludedBy returns the first exclusion keyword found in the title or
// advertiser, or "" when the record is clean.
func excludedBy(j domain.Job, exclude []string) string {
	text := strings.ToLower(j.Title + " " + j.Advertiser)
	for _, kw := range exclude {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return k
		}
	}
	return ""
}
