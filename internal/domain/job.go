package domain

// Sentinel values used when a listing field cannot be recovered from the page.
const (
	UnknownField = "Unknown"
	NoSalary     = "N/A"
)

// Job is the canonical normalized listing. ID is the dedup key: two Jobs
// with the same ID are the same listing no matter what the other fields say.
type Job struct {
	ID          string
	Title       string
	Advertiser  string
	Location    string
	Salary      string
	ListingDate string
	URL         string
	Keyword     string // search keyword that surfaced this listing
}

// HasSentinelLocation reports whether Location carries no usable value.
func (j Job) HasSentinelLocation() bool {
	return j.Location == "" || j.Location == UnknownField || j.Location == NoSalary
}
