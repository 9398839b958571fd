package keep

import keep "google.golang.org/api/keep/v1"

// Note represents a Google Keep note
type Note struct {
	// Name is the resource name, format: notes/{note}
	Name string

	// Title is the note title
	Title string

	// Text is the plain-text body. Empty for list notes.
	Text string

	// ListItems holds the items of a checklist note, checked items
	// prefixed with "[x] ".
	ListItems []string

	// Trashed indicates whether the note is in the trash
	Trashed bool

	// Attachments are the resource names of the note's attachments
	Attachments []string

	// Permissions are the permissions granted on this note
	Permissions []Permission

	// CreateTime is the RFC 3339 creation timestamp
	CreateTime string

	// UpdateTime is the RFC 3339 last-modification timestamp
	UpdateTime string
}

// Permission represents access granted to a note
type Permission struct {
	// Name is the resource name, format: notes/{note}/permissions/{permission}
	Name string

	// Email is the grantee's email address
	Email string

	// Role is OWNER or WRITER
	Role string
}

func toNote(n *keep.Note) Note {
	note := Note{
		Name:       n.Name,
		Title:      n.Title,
		Trashed:    n.Trashed,
		CreateTime: n.CreateTime,
		UpdateTime: n.UpdateTime,
	}

	if n.Body != nil {
		if n.Body.Text != nil {
			note.Text = n.Body.Text.Text
		}
		if n.Body.List != nil {
			for _, item := range n.Body.List.ListItems {
				note.ListItems = append(note.ListItems, listItemText(item))
			}
		}
	}

	for _, att := range n.Attachments {
		note.Attachments = append(note.Attachments, att.Name)
	}
	for _, p := range n.Permissions {
		note.Permissions = append(note.Permissions, toPermission(p))
	}

	return note
}

func listItemText(item *keep.ListItem) string {
	text := ""
	if item.Text != nil {
		text = item.Text.Text
	}
	if item.Checked {
		return "[x] " + text
	}
	return text
}

func toPermission(p *keep.Permission) Permission {
	return Permission{
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}
