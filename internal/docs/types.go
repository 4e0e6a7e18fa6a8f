package docs

// DocumentMetadata is the Drive-side view of a Google Doc, as returned by
// document listings.
type DocumentMetadata struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MimeType     string  `json:"mimeType"`
	CreatedTime  string  `json:"createdTime"`
	ModifiedTime string  `json:"modifiedTime"`
	Size         int64   `json:"size,omitempty"`
	WebViewLink  string  `json:"webViewLink,omitempty"`
	Owners       []Owner `json:"owners,omitempty"`
}

// Owner identifies a Drive user who owns a document.
type Owner struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}
