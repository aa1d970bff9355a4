package models

// Plugin is a single record from the registry's query_plugins response.
// Only the fields the pipeline needs are mapped; anything else the API
// returns is dropped at decode time and never reaches the cache.
type Plugin struct {
	Slug           string `json:"slug"`
	Name           string `json:"name,omitempty"`
	Version        string `json:"version,omitempty"`
	ActiveInstalls int    `json:"active_installs"`
	LastUpdated    string `json:"last_updated"`
	DownloadLink   string `json:"download_link,omitempty"`
}

// PageInfo is known in full only from page 1; later pages repeat it but the
// coordinator never reads it again.
type PageInfo struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	Results int `json:"results"`
}

// QueryResponse is the JSON body of one query_plugins page.
type QueryResponse struct {
	Info    PageInfo `json:"info"`
	Plugins []Plugin `json:"plugins"`
}
