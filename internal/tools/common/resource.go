package common

// resourceArgKeys are the well-known identifier arguments, in the order
// they are checked. The first one present names the resource a tool call
// targets, which audit logs and detailed metrics pick up.
var resourceArgKeys = []string{
	"fileId",
	"folderId",
	"documentId",
	"presentationId",
	"spreadsheetId",
	"calendarId",
	"taskListId",
	"resourceName",
}

// GetResourceFromArgs extracts the primary resource identifier from
// request arguments. Returns an empty string when the tool targets no
// particular resource (list and create tools, auth tools).
func GetResourceFromArgs(args map[string]interface{}) string {
	for _, key := range resourceArgKeys {
		if val, ok := args[key].(string); ok && val != "" {
			return val
		}
	}
	return ""
}
