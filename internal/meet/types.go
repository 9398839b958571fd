package meet

import meet "google.golang.org/api/meet/v2"

// ConferenceRecord represents a past conference
type ConferenceRecord struct {
	// Name is the resource name, format: conferenceRecords/{record}
	Name string

	// Space is the resource name of the Meet space the conference ran in
	Space string

	// StartTime is the RFC 3339 start timestamp
	StartTime string

	// EndTime is the RFC 3339 end timestamp, empty while ongoing
	EndTime string
}

// Participant represents a participant in a conference
type Participant struct {
	// Name is the resource name, format:
	// conferenceRecords/{record}/participants/{participant}
	Name string

	// DisplayName is the participant's display name
	DisplayName string

	// Kind is signed-in, anonymous, or phone
	Kind string

	// EarliestStartTime is when the participant first joined
	EarliestStartTime string

	// LatestEndTime is when the participant last left
	LatestEndTime string
}

// Recording represents a recording of a conference
type Recording struct {
	// Name is the resource name of the recording
	Name string

	// State is the recording state (e.g. FILE_GENERATED)
	State string

	// DriveFile is the resource name of the recording's Drive file
	DriveFile string

	// ExportURI is the URI to access the recording file
	ExportURI string
}

// Transcript represents a transcript of a conference
type Transcript struct {
	// Name is the resource name of the transcript
	Name string

	// State is the transcript state (e.g. FILE_GENERATED)
	State string

	// Document is the resource name of the transcript's Docs file
	Document string
}

// TranscriptEntry represents a single spoken entry in a transcript
type TranscriptEntry struct {
	// Name is the resource name of the entry
	Name string

	// Participant is the resource name of the speaker
	Participant string

	// Text is the transcribed text
	Text string

	// Language is the BCP 47 language code of the entry
	Language string

	// StartTime is when the participant started speaking
	StartTime string

	// EndTime is when the participant finished speaking
	EndTime string
}

func toConferenceRecord(r *meet.ConferenceRecord) ConferenceRecord {
	return ConferenceRecord{
		Name:      r.Name,
		Space:     r.Space,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

func toParticipant(p *meet.Participant) Participant {
	participant := Participant{
		Name:              p.Name,
		EarliestStartTime: p.EarliestStartTime,
		LatestEndTime:     p.LatestEndTime,
	}
	switch {
	case p.SignedinUser != nil:
		participant.DisplayName = p.SignedinUser.DisplayName
		participant.Kind = "signed-in"
	case p.AnonymousUser != nil:
		participant.DisplayName = p.AnonymousUser.DisplayName
		participant.Kind = "anonymous"
	case p.PhoneUser != nil:
		participant.DisplayName = p.PhoneUser.DisplayName
		participant.Kind = "phone"
	}
	return participant
}

func toRecording(r *meet.Recording) Recording {
	recording := Recording{
		Name:  r.Name,
		State: r.State,
	}
	if r.DriveDestination != nil {
		recording.DriveFile = r.DriveDestination.File
		recording.ExportURI = r.DriveDestination.ExportUri
	}
	return recording
}

func toTranscript(t *meet.Transcript) Transcript {
	transcript := Transcript{
		Name:  t.Name,
		State: t.State,
	}
	if t.DocsDestination != nil {
		transcript.Document = t.DocsDestination.Document
	}
	return transcript
}
