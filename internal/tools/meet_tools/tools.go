package meet_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/meet"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getMeetClient retrieves or creates a meet client for the specified account
func getMeetClient(ctx context.Context, account string, sc *server.ServerContext) (*meet.Client, error) {
	client := sc.MeetClientForAccount(account)
	if client == nil {
		if !meet.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = meet.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Meet client for account %s: %w", account, err)
		}
		sc.SetMeetClientForAccount(account, client)
	}
	return client, nil
}

func formatRecord(r *meet.ConferenceRecord) string {
	end := r.EndTime
	if end == "" {
		end = "(ongoing)"
	}
	return fmt.Sprintf("%s\n  Space: %s\n  Start: %s\n  End: %s", r.Name, r.Space, r.StartTime, end)
}

// RegisterMeetTools registers all Google Meet tools with the MCP server.
// All Meet tools are read-only: conference records are API artifacts of
// past or ongoing meetings.
func RegisterMeetTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List conference records tool
	listRecordsTool := mcp.NewTool("meet_list_conference_records",
		mcp.WithDescription("List conference records of past and ongoing meetings"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("filter",
			mcp.Description("Filter expression, e.g. 'space.meeting_code = \"abc-defg-hij\"'"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of records to return"),
		),
	)

	s.AddTool(listRecordsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		filter, _ := args["filter"].(string)
		var pageSize int64
		if n, ok := args["pageSize"].(float64); ok {
			pageSize = int64(n)
		}

		records, _, err := client.ListConferenceRecords(ctx, filter, pageSize, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list conference records: %v", err)), nil
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("No conference records found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d conference records:\n", len(records)))
		for _, r := range records {
			sb.WriteString("- " + formatRecord(&r) + "\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get conference record tool
	getRecordTool := mcp.NewTool("meet_get_conference_record",
		mcp.WithDescription("Get a conference record by resource name"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The conference record name, e.g. 'conferenceRecords/abc-123'"),
		),
	)

	s.AddTool(getRecordTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		r, err := client.GetConferenceRecord(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get conference record: %v", err)), nil
		}
		return mcp.NewToolResultText(formatRecord(r)), nil
	})

	// List participants tool
	listParticipantsTool := mcp.NewTool("meet_list_participants",
		mcp.WithDescription("List the participants of a conference"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("conferenceRecord",
			mcp.Required(),
			mcp.Description("The conference record name, e.g. 'conferenceRecords/abc-123'"),
		),
	)

	s.AddTool(listParticipantsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		record, ok := args["conferenceRecord"].(string)
		if !ok || record == "" {
			return mcp.NewToolResultError("conferenceRecord is required"), nil
		}

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		participants, err := client.ListParticipants(ctx, record)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list participants: %v", err)), nil
		}
		if len(participants) == 0 {
			return mcp.NewToolResultText("No participants found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d participants:\n", len(participants)))
		for _, p := range participants {
			sb.WriteString(fmt.Sprintf("- %s (%s) joined %s, left %s\n",
				p.DisplayName, p.Kind, p.EarliestStartTime, p.LatestEndTime))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// List recordings tool
	listRecordingsTool := mcp.NewTool("meet_list_recordings",
		mcp.WithDescription("List the recordings of a conference"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("conferenceRecord",
			mcp.Required(),
			mcp.Description("The conference record name, e.g. 'conferenceRecords/abc-123'"),
		),
	)

	s.AddTool(listRecordingsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		record, ok := args["conferenceRecord"].(string)
		if !ok || record == "" {
			return mcp.NewToolResultError("conferenceRecord is required"), nil
		}

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		recordings, err := client.ListRecordings(ctx, record)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list recordings: %v", err)), nil
		}
		if len(recordings) == 0 {
			return mcp.NewToolResultText("No recordings found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d recordings:\n", len(recordings)))
		for _, rec := range recordings {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n  Drive file: %s\n  Export: %s\n",
				rec.Name, rec.State, rec.DriveFile, rec.ExportURI))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// List transcripts tool
	listTranscriptsTool := mcp.NewTool("meet_list_transcripts",
		mcp.WithDescription("List the transcripts of a conference"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("conferenceRecord",
			mcp.Required(),
			mcp.Description("The conference record name, e.g. 'conferenceRecords/abc-123'"),
		),
	)

	s.AddTool(listTranscriptsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		record, ok := args["conferenceRecord"].(string)
		if !ok || record == "" {
			return mcp.NewToolResultError("conferenceRecord is required"), nil
		}

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		transcripts, err := client.ListTranscripts(ctx, record)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list transcripts: %v", err)), nil
		}
		if len(transcripts) == 0 {
			return mcp.NewToolResultText("No transcripts found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Found %d transcripts:\n", len(transcripts)))
		for _, tr := range transcripts {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n  Document: %s\n", tr.Name, tr.State, tr.Document))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	// Get transcript entries tool
	transcriptEntriesTool := mcp.NewTool("meet_get_transcript_entries",
		mcp.WithDescription("Get the spoken entries of a transcript"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("transcript",
			mcp.Required(),
			mcp.Description("The transcript name, e.g. 'conferenceRecords/abc-123/transcripts/def-456'"),
		),
	)

	s.AddTool(transcriptEntriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		transcript, ok := args["transcript"].(string)
		if !ok || transcript == "" {
			return mcp.NewToolResultError("transcript is required"), nil
		}

		client, err := getMeetClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entries, err := client.GetTranscriptEntries(ctx, transcript)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get transcript entries: %v", err)), nil
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No transcript entries found."), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Transcript %s (%d entries):\n", transcript, len(entries)))
		for _, e := range entries {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", e.StartTime, e.Participant, e.Text))
		}
		return mcp.NewToolResultText(sb.String()), nil
	})

	return nil
}
