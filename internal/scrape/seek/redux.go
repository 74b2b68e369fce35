package seek

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The front end serializes its state into a global assignment inside a
// script tag. The tight pattern wants a clean `{...};` value; the loose one
// grabs everything after the assignment so the brace-slice repair can deal
// with trailing bundler junk.
var (
	reduxPattern      = regexp.MustCompile(`(?s)window\.SEEK_REDUX_DATA\s*=\s*(\{.*?\})\s*;`)
	reduxLoosePattern = regexp.MustCompile(`(?s)window\.SEEK_REDUX_DATA\s*=\s*(\{.+)`)
)

// Known nesting paths for the result list, probed in priority order.
var jobListPaths = [][]string{
	{"results", "jobs"},
	{"search", "results", "jobs"},
	{"jobs"},
}

type reduxStrategy struct{}

func (reduxStrategy) Name() string { return "redux" }

func (reduxStrategy) Extract(doc *goquery.Document) ([]RawItem, bool) {
	var blob map[string]any
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for _, pat := range []*regexp.Regexp{reduxPattern, reduxLoosePattern} {
			m := pat.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if parsed, ok := parseBlob(m[1]); ok {
				blob = parsed
				return false
			}
		}
		return true
	})
	if blob == nil {
		return nil, false
	}

	list := findJobList(blob)
	if len(list) == 0 {
		return nil, false
	}

	items := make([]RawItem, 0, len(list))
	for _, el := range list {
		if it, ok := itemFromBlob(el); ok {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// parseBlob decodes the captured assignment value. A failed decode retries on
// the slice between the first '{' and the last '}'.
func parseBlob(raw string) (map[string]any, bool) {
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, true
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	out = nil
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err == nil {
		return out, true
	}
	return nil, false
}

func findJobList(blob map[string]any) []any {
	for _, path := range jobListPaths {
		var node any = blob
		for _, key := range path {
			m, ok := node.(map[string]any)
			if !ok {
				node = nil
				break
			}
			node = m[key]
		}
		if list, ok := node.([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// itemFromBlob pulls the fields we care about out of one list element.
// Elements that are not objects or carry no id are skipped, never fatal to
// the batch.
func itemFromBlob(el any) (RawItem, bool) {
	m, ok := el.(map[string]any)
	if !ok {
		return RawItem{}, false
	}

	id := firstString(m, "id", "jobId", "job_id")
	if id == "" {
		return RawItem{}, false
	}

	it := RawItem{
		ID:          id,
		Title:       firstString(m, "title", "occupation"),
		Location:    firstString(m, "location"),
		Salary:      firstString(m, "salary"),
		ListingDate: firstString(m, "listingDate", "postedDate"),
	}

	// advertiser arrives either as {description: "..."} or a flat string
	switch adv := m["advertiser"].(type) {
	case map[string]any:
		it.Advertiser = asString(adv["description"])
	default:
		it.Advertiser = asString(adv)
	}
	return it, true
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// asString coerces JSON scalars to strings; listing ids arrive both ways.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
