package paragraph

// Publication is the subset of the upstream publication record the server
// needs for identity resolution.
type Publication struct {
	ID           string `json:"id"`
	Slug         string `json:"slug,omitempty"`
	Name         string `json:"name,omitempty"`
	Summary      string `json:"summary,omitempty"`
	CustomDomain string `json:"customDomain,omitempty"`
	URL          string `json:"url,omitempty"`
}

// FeedItem is one entry of the public feed with its embedded publication.
type FeedItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Publication *Publication `json:"publication,omitempty"`
}

// FeedPage is one page of the public feed.
type FeedPage struct {
	Items      []FeedItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Pagination is the cursor block returned by list endpoints. Fields may be
// absent upstream; zero values mean no further pages.
type Pagination struct {
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"hasMore,omitempty"`
}
