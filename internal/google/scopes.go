package google

// DefaultOAuthScopes are the Google OAuth scopes required for full MCP
// functionality. These scopes are used consistently across the application
// for OAuth configurations.
//
// The scopes provide access to:
//   - Admin Directory and Reports: user/group management, activity reports
//   - Google Chat: spaces, memberships, messages
//   - Google Forms: form bodies and responses
//   - Google Keep: notes and permissions
//   - Google Meet: conference records
//   - Contacts: read/write (including other contacts and directory)
//   - Google Sheets and Drive: spreadsheet content and file listing
//   - Google Slides: presentations
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Admin SDK scopes
	"https://www.googleapis.com/auth/admin.directory.user",
	"https://www.googleapis.com/auth/admin.directory.group",
	"https://www.googleapis.com/auth/admin.directory.group.member",
	"https://www.googleapis.com/auth/admin.reports.audit.readonly",

	// Google Chat scopes
	"https://www.googleapis.com/auth/chat.spaces",
	"https://www.googleapis.com/auth/chat.memberships",
	"https://www.googleapis.com/auth/chat.messages",

	// Google Forms scopes
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.responses.readonly",

	// Google Keep scope
	"https://www.googleapis.com/auth/keep",

	// Google Meet scope
	"https://www.googleapis.com/auth/meetings.space.readonly",

	// Contacts scopes
	"https://www.googleapis.com/auth/contacts",
	"https://www.googleapis.com/auth/contacts.other.readonly",
	"https://www.googleapis.com/auth/directory.readonly",

	// Google Sheets and Drive scopes
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",

	// Google Slides scope
	"https://www.googleapis.com/auth/presentations",
}
