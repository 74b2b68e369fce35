package seek

import (
	"net/url"
	"strings"

	"seekwatch/internal/domain"
	"seekwatch/internal/scrape/util"
)

// normalize fills sentinel defaults and derives the canonical absolute URL.
func (e *Extractor) normalize(it RawItem) domain.Job {
	j := domain.Job{
		ID:          strings.TrimSpace(it.ID),
		Title:       util.CleanText(it.Title),
		Advertiser:  util.CleanText(it.Advertiser),
		Location:    util.CleanText(it.Location),
		Salary:      util.CleanText(it.Salary),
		ListingDate: util.CleanText(it.ListingDate),
	}

	if j.Title == "" {
		j.Title = domain.UnknownField
	}
	if j.Advertiser == "" {
		j.Advertiser = domain.UnknownField
	}
	if j.Location == "" {
		j.Location = domain.UnknownField
	}
	if j.Salary == "" {
		j.Salary = domain.NoSalary
	}
	if j.ListingDate == "" {
		j.ListingDate = domain.UnknownField
	}

	j.URL = e.jobURL(it)
	return j
}

// jobURL resolves the observed href against the site origin, or synthesizes
// the detail link from the listing id when no usable href exists.
func (e *Extractor) jobURL(it RawItem) string {
	if href := strings.TrimSpace(it.Href); href != "" {
		if u, err := url.Parse(href); err == nil {
			if u.IsAbs() {
				return u.String()
			}
			if base, err := url.Parse(e.origin); err == nil && base.Host != "" {
				return base.ResolveReference(u).String()
			}
		}
	}
	return e.origin + "/job/" + strings.TrimSpace(it.ID)
}
