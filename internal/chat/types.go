package chat

import chat "google.golang.org/api/chat/v1"

// Space represents a Google Chat space
type Space struct {
	// Name is the resource name, format: spaces/{space}
	Name string

	// DisplayName is the human-readable name of the space
	DisplayName string

	// SpaceType is one of SPACE, GROUP_CHAT, DIRECT_MESSAGE
	SpaceType string
}

// Member represents a membership in a space
type Member struct {
	// Name is the resource name, format: spaces/{space}/members/{member}
	Name string

	// User is the resource name of the member's user
	User string

	// DisplayName is the member's display name, if resolved
	DisplayName string

	// Role is the membership role (ROLE_MEMBER, ROLE_MANAGER)
	Role string

	// State is the membership state (JOINED, INVITED)
	State string
}

// Message represents a Google Chat message
type Message struct {
	// Name is the resource name, format: spaces/{space}/messages/{message}
	Name string

	// Sender is the resource name of the message sender
	Sender string

	// Text is the plain-text body of the message
	Text string

	// Thread is the resource name of the thread this message belongs to
	Thread string

	// CreateTime is the RFC 3339 creation timestamp
	CreateTime string
}

func toSpace(s *chat.Space) Space {
	return Space{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		SpaceType:   s.SpaceType,
	}
}

func toMember(m *chat.Membership) Member {
	member := Member{
		Name:  m.Name,
		Role:  m.Role,
		State: m.State,
	}
	if m.Member != nil {
		member.User = m.Member.Name
		member.DisplayName = m.Member.DisplayName
	}
	return member
}

func toMessage(m *chat.Message) Message {
	msg := Message{
		Name:       m.Name,
		Text:       m.Text,
		CreateTime: m.CreateTime,
	}
	if m.Sender != nil {
		msg.Sender = m.Sender.Name
	}
	if m.Thread != nil {
		msg.Thread = m.Thread.Name
	}
	return msg
}
