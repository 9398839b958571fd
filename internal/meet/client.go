package meet

import (
	"context"
	"fmt"

	meet "google.golang.org/api/meet/v2"
	"google.golang.org/api/option"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Meet service
type Client struct {
	svc     *meet.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Meet client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := meet.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Meet service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Meet client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListConferenceRecords lists past conferences, newest first. Filter is
// a Meet API filter expression, e.g. `space.name = "spaces/abc"`.
func (c *Client) ListConferenceRecords(ctx context.Context, filter string, pageSize int64, pageToken string) ([]ConferenceRecord, string, error) {
	call := c.svc.ConferenceRecords.List().Context(ctx)
	if filter != "" {
		call = call.Filter(filter)
	}
	if pageSize > 0 {
		call = call.PageSize(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list conference records: %w", err)
	}

	var records []ConferenceRecord
	for _, r := range result.ConferenceRecords {
		records = append(records, toConferenceRecord(r))
	}

	return records, result.NextPageToken, nil
}

// GetConferenceRecord retrieves a conference record by resource name
// (conferenceRecords/{record})
func (c *Client) GetConferenceRecord(ctx context.Context, name string) (*ConferenceRecord, error) {
	r, err := c.svc.ConferenceRecords.Get(name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get conference record %s: %w", name, err)
	}

	record := toConferenceRecord(r)
	return &record, nil
}

// ListParticipants lists the participants of a conference record
func (c *Client) ListParticipants(ctx context.Context, recordName string) ([]Participant, error) {
	var participants []Participant

	call := c.svc.ConferenceRecords.Participants.List(recordName)
	err := call.Pages(ctx, func(resp *meet.ListParticipantsResponse) error {
		for _, p := range resp.Participants {
			participants = append(participants, toParticipant(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of %s: %w", recordName, err)
	}

	return participants, nil
}

// ListRecordings lists the recordings of a conference record
func (c *Client) ListRecordings(ctx context.Context, recordName string) ([]Recording, error) {
	var recordings []Recording

	call := c.svc.ConferenceRecords.Recordings.List(recordName)
	err := call.Pages(ctx, func(resp *meet.ListRecordingsResponse) error {
		for _, r := range resp.Recordings {
			recordings = append(recordings, toRecording(r))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings of %s: %w", recordName, err)
	}

	return recordings, nil
}

// ListTranscripts lists the transcripts of a conference record
func (c *Client) ListTranscripts(ctx context.Context, recordName string) ([]Transcript, error) {
	var transcripts []Transcript

	call := c.svc.ConferenceRecords.Transcripts.List(recordName)
	err := call.Pages(ctx, func(resp *meet.ListTranscriptsResponse) error {
		for _, t := range resp.Transcripts {
			transcripts = append(transcripts, toTranscript(t))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts of %s: %w", recordName, err)
	}

	return transcripts, nil
}

// GetTranscriptEntries retrieves the spoken entries of a transcript
func (c *Client) GetTranscriptEntries(ctx context.Context, transcriptName string) ([]TranscriptEntry, error) {
	var entries []TranscriptEntry

	call := c.svc.ConferenceRecords.Transcripts.Entries.List(transcriptName)
	err := call.Pages(ctx, func(resp *meet.ListTranscriptEntriesResponse) error {
		for _, e := range resp.TranscriptEntries {
			entries = append(entries, TranscriptEntry{
				Name:        e.Name,
				Participant: e.Participant,
				Text:        e.Text,
				Language:    e.LanguageCode,
				StartTime:   e.StartTime,
				EndTime:     e.EndTime,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript entries of %s: %w", transcriptName, err)
	}

	return entries, nil
}
