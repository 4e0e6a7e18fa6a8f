package contacts_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/contacts"
	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// getContactsClient returns the cached People client, mapping a missing
// token to the authorization walkthrough so agents can recover on their own.
func getContactsClient(sc *server.ServerContext) (*contacts.Client, error) {
	client, err := sc.ContactsClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Contacts client: %w", err)
	}
	return client, nil
}

// pageSizeArg reads the optional pageSize argument; zero means "let the
// client pick its default".
func pageSizeArg(args map[string]interface{}) int64 {
	return int64(common.IntArg(args, "pageSize", 0))
}

// formatContactList renders contacts as a numbered summary, one per entry
func formatContactList(contactList []contacts.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contact(s):\n\n", len(contactList))
	for i, c := range contactList {
		name := c.DisplayName
		if name == "" {
			name = "(no name)"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		fmt.Fprintf(&b, "   Resource: %s\n", c.ResourceName)
		for _, email := range c.Emails {
			fmt.Fprintf(&b, "   Email: %s", email.Value)
			if email.Type != "" {
				fmt.Fprintf(&b, " (%s)", email.Type)
			}
			b.WriteString("\n")
		}
		for _, phone := range c.Phones {
			fmt.Fprintf(&b, "   Phone: %s", phone.Value)
			if phone.Type != "" {
				fmt.Fprintf(&b, " (%s)", phone.Type)
			}
			b.WriteString("\n")
		}
		for _, org := range c.Organizations {
			fmt.Fprintf(&b, "   Organization: %s", org.Name)
			if org.Title != "" {
				fmt.Fprintf(&b, " - %s", org.Title)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// contactInputFromArgs builds a ContactInput from the common create/update
// tool arguments
func contactInputFromArgs(args map[string]interface{}) contacts.ContactInput {
	return contacts.ContactInput{
		GivenName:    common.StringArg(args, "givenName", ""),
		FamilyName:   common.StringArg(args, "familyName", ""),
		Emails:       common.ListArg(args, "emails"),
		Phones:       common.ListArg(args, "phones"),
		Organization: common.StringArg(args, "organization", ""),
		JobTitle:     common.StringArg(args, "jobTitle", ""),
	}
}

// RegisterContactsTools registers all Google Contacts-related tools with the MCP server
func RegisterContactsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("contacts_list_contacts",
		mcp.WithDescription("List the user's saved contacts"),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of contacts to return (default: 50, max: 1000)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_list_contacts", "contacts", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contactList, err := client.ListContacts(ctx, pageSizeArg(request.GetArguments()))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list contacts: %v", err)), nil
			}
			if len(contactList) == 0 {
				return mcp.NewToolResultText("No contacts found."), nil
			}

			return mcp.NewToolResultText(formatContactList(contactList)), nil
		}))

	s.AddTool(mcp.NewTool("contacts_get_contact",
		mcp.WithDescription("Get details of a specific contact"),
		mcp.WithString("resourceName",
			mcp.Required(),
			mcp.Description("The resource name of the contact (e.g., 'people/c12345', or a bare ID)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_get_contact", "contacts", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			resourceName, err := common.RequiredStringArg(request.GetArguments(), "resourceName")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contact, err := client.GetContact(ctx, resourceName)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get contact: %v", err)), nil
			}

			result, _ := json.MarshalIndent(contact, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("contacts_search_contacts",
		mcp.WithDescription("Search the user's contacts by name, email, or phone number"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results to return (default: 10, max: 30)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_search_contacts", "contacts", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			query, err := common.RequiredStringArg(args, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contactList, err := client.SearchContacts(ctx, query, pageSizeArg(args))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
			}
			if len(contactList) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf("No contacts found matching %q.", query)), nil
			}

			return mcp.NewToolResultText(formatContactList(contactList)), nil
		}))

	s.AddTool(mcp.NewTool("contacts_list_other_contacts",
		mcp.WithDescription("List 'Other contacts', people the user has interacted with but not saved"),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of contacts to return (default: 50, max: 1000)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_list_other_contacts", "contacts", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contactList, err := client.ListOtherContacts(ctx, pageSizeArg(request.GetArguments()))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list other contacts: %v", err)), nil
			}
			if len(contactList) == 0 {
				return mcp.NewToolResultText("No other contacts found."), nil
			}

			return mcp.NewToolResultText(formatContactList(contactList)), nil
		}))

	s.AddTool(mcp.NewTool("contacts_search_directory",
		mcp.WithDescription("Search the Google Workspace domain directory (requires a Workspace account)"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_search_directory", "contacts", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			query, err := common.RequiredStringArg(args, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contactList, err := client.SearchDirectory(ctx, query, pageSizeArg(args))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search directory: %v", err)), nil
			}
			if len(contactList) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf("No directory entries found matching %q.", query)), nil
			}

			return mcp.NewToolResultText(formatContactList(contactList)), nil
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("contacts_create_contact",
		mcp.WithDescription("Create a new contact"),
		mcp.WithString("givenName",
			mcp.Description("The contact's given (first) name"),
		),
		mcp.WithString("familyName",
			mcp.Description("The contact's family (last) name"),
		),
		mcp.WithString("emails",
			mcp.Description("Comma-separated list of email addresses"),
		),
		mcp.WithString("phones",
			mcp.Description("Comma-separated list of phone numbers"),
		),
		mcp.WithString("organization",
			mcp.Description("The contact's organization name"),
		),
		mcp.WithString("jobTitle",
			mcp.Description("The contact's job title"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_create_contact", "contacts", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			input := contactInputFromArgs(request.GetArguments())
			if input.GivenName == "" && input.FamilyName == "" {
				return mcp.NewToolResultError("At least one of givenName or familyName is required"), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contact, err := client.CreateContact(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create contact: %v", err)), nil
			}

			result, _ := json.MarshalIndent(contact, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Contact created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("contacts_update_contact",
		mcp.WithDescription("Update an existing contact. Only the provided fields are changed."),
		mcp.WithString("resourceName",
			mcp.Required(),
			mcp.Description("The resource name of the contact to update"),
		),
		mcp.WithString("givenName",
			mcp.Description("New given (first) name"),
		),
		mcp.WithString("familyName",
			mcp.Description("New family (last) name"),
		),
		mcp.WithString("emails",
			mcp.Description("New comma-separated list of email addresses (replaces existing)"),
		),
		mcp.WithString("phones",
			mcp.Description("New comma-separated list of phone numbers (replaces existing)"),
		),
		mcp.WithString("organization",
			mcp.Description("New organization name"),
		),
		mcp.WithString("jobTitle",
			mcp.Description("New job title"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_update_contact", "contacts", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			resourceName, err := common.RequiredStringArg(args, "resourceName")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contact, err := client.UpdateContact(ctx, resourceName, contactInputFromArgs(args))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update contact: %v", err)), nil
			}

			result, _ := json.MarshalIndent(contact, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Contact updated successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("contacts_delete_contact",
		mcp.WithDescription("Delete a contact"),
		mcp.WithString("resourceName",
			mcp.Required(),
			mcp.Description("The resource name of the contact to delete"),
		),
	), common.InstrumentedToolHandlerWithService(
		"contacts_delete_contact", "contacts", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			resourceName, err := common.RequiredStringArg(request.GetArguments(), "resourceName")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getContactsClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteContact(ctx, resourceName); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete contact: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Contact %s deleted successfully", resourceName)), nil
		}))

	return nil
}
