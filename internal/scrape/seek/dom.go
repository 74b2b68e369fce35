package seek

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"seekwatch/internal/scrape/util"
)

// jobHrefPattern matches job-detail links; the numeric segment is the
// listing id.
var jobHrefPattern = regexp.MustCompile(`/job/(\d+)`)

// cardSelector covers the card container shapes seen across markup
// revisions. Non-card articles fall out naturally because they yield no id.
const cardSelector = "article, [data-card-type='JobCard'], [data-automation='normalJob']"

var (
	advertiserSelectors = []string{
		"[data-automation='jobCompany']",
		"[data-testid='company-name']",
		"[class*='advertiser']",
		"[class*='company']",
	}
	locationSelectors = []string{
		"[data-automation='jobLocation']",
		"[data-automation='jobCardLocation']",
		"[data-testid='job-location']",
		"[class*='location']",
	}
	salarySelectors = []string{
		"[data-automation='jobSalary']",
		"[data-testid='salary']",
		"[class*='salary']",
		"[class*='package']",
	}
	dateSelectors = []string{
		"[data-automation='jobListingDate']",
		"[data-testid='job-posted-date']",
		"[class*='posted']",
	}
)

type domStrategy struct{}

func (domStrategy) Name() string { return "dom" }

func (d domStrategy) Extract(doc *goquery.Document) ([]RawItem, bool) {
	// Candidates come from two sweeps: card containers, then job-detail
	// links hoisted to their enclosing card when one exists. Dedup is by
	// node identity so a card found both ways is processed once.
	seen := map[*html.Node]bool{}
	var cands []*goquery.Selection

	add := func(sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		n := sel.Nodes[0]
		if seen[n] {
			return
		}
		seen[n] = true
		cands = append(cands, sel.First())
	}

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		add(card)
	})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !jobHrefPattern.MatchString(href) {
			return
		}
		if card := a.Closest(cardSelector); card.Length() > 0 {
			add(card)
			return
		}
		add(a)
	})

	var items []RawItem
	for _, cand := range cands {
		if it, ok := d.itemFromCandidate(cand); ok {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (d domStrategy) itemFromCandidate(cand *goquery.Selection) (RawItem, bool) {
	link := cand
	if !cand.Is("a") {
		link = cand.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			return jobHrefPattern.MatchString(href)
		}).First()
		if link.Length() == 0 {
			link = cand.Find("a[data-automation='jobTitle']").First()
		}
	}

	href := strings.TrimSpace(link.AttrOr("href", ""))

	id := ""
	if m := jobHrefPattern.FindStringSubmatch(href); m != nil {
		id = m[1]
	}
	for _, attr := range []string{"data-job-id", "data-automation-id"} {
		if id != "" {
			break
		}
		id = strings.TrimSpace(cand.AttrOr(attr, ""))
	}
	if id == "" {
		return RawItem{}, false
	}

	return RawItem{
		ID:          id,
		Href:        href,
		Title:       resolveTitle(cand, link),
		Advertiser:  textFromAny(cand, advertiserSelectors),
		Location:    textFromAny(cand, locationSelectors),
		Salary:      textFromAny(cand, salarySelectors),
		ListingDate: resolveDate(cand),
	}, true
}

// resolveTitle: link text, then the first heading in the card, then an
// accessibility label.
func resolveTitle(cand, link *goquery.Selection) string {
	if t := util.CleanText(link.Text()); t != "" {
		return t
	}
	if t := util.CleanText(cand.Find("h1, h2, h3, h4").First().Text()); t != "" {
		return t
	}
	if t := util.CleanText(link.AttrOr("aria-label", "")); t != "" {
		return t
	}
	return util.CleanText(cand.AttrOr("aria-label", ""))
}

func resolveDate(cand *goquery.Selection) string {
	if t := textFromAny(cand, dateSelectors); t != "" {
		return t
	}
	tm := cand.Find("time").First()
	if dt := strings.TrimSpace(tm.AttrOr("datetime", "")); dt != "" {
		return dt
	}
	return util.CleanText(tm.Text())
}

func textFromAny(cand *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if t := util.CleanText(cand.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
