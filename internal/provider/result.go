package provider

// PageResult is the metadata extracted from a fetched web page.
type PageResult struct {
	URL         string
	Title       string
	Description string
	ImageURL    string
	SiteName    string
}
