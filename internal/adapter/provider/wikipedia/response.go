package wikipedia

// apiQueryResponse is the MediaWiki action=query response (format=json).
// Pages are keyed by page id; a missing page is keyed "-1" (or any negative id).
type apiQueryResponse struct {
	Query struct {
		Normalized []apiRename         `json:"normalized"`
		Redirects  []apiRename         `json:"redirects"`
		Pages      map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiRename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type apiPage struct {
	PageID  int     `json:"pageid"`
	Title   string  `json:"title"`
	Missing *string `json:"missing"`
	Invalid *string `json:"invalid"`
}

func (p apiPage) exists(key string) bool {
	if p.Missing != nil || p.Invalid != nil {
		return false
	}
	return key != "" && key[0] != '-'
}

// apiPageviewsResponse is the Wikimedia REST per-article pageviews response.
type apiPageviewsResponse struct {
	Items []struct {
		Timestamp string `json:"timestamp"`
		Views     int    `json:"views"`
	} `json:"items"`
}
