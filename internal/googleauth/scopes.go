package googleauth

// DefaultOAuthScopes is the scope set requested during authorization.
// Every Workspace service the server exposes tools for is listed here,
// so a single consent covers the whole tool surface.
//
// Drive is requested with full access because Docs, Slides and Sheets
// file management (copy, move, share, trash) goes through the Drive API.
// Contacts additionally needs the read-only "other contacts" and
// directory scopes for contacts_search_directory and the otherContacts
// source.
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/contacts",
	"https://www.googleapis.com/auth/contacts.other.readonly",
	"https://www.googleapis.com/auth/directory.readonly",
}
