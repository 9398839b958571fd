// Package meet_tools provides MCP tools for Google Meet.
//
// Available tools (all read-only):
//   - meet_list_conference_records: list past and ongoing meetings
//   - meet_get_conference_record: get a single conference record
//   - meet_list_participants: list a conference's participants
//   - meet_list_recordings: list a conference's recordings
//   - meet_list_transcripts: list a conference's transcripts
//   - meet_get_transcript_entries: get the spoken entries of a transcript
//
// All tools support an optional 'account' parameter to specify which
// Google account to use.
package meet_tools
