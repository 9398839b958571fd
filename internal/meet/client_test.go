package meet

import (
	"testing"

	meet "google.golang.org/api/meet/v2"
)

func TestToParticipant(t *testing.T) {
	tests := []struct {
		name     string
		input    *meet.Participant
		wantName string
		wantKind string
	}{
		{
			name: "signed-in user",
			input: &meet.Participant{
				Name:         "conferenceRecords/abc/participants/1",
				SignedinUser: &meet.SignedinUser{DisplayName: "Jane Doe"},
			},
			wantName: "Jane Doe",
			wantKind: "signed-in",
		},
		{
			name: "anonymous user",
			input: &meet.Participant{
				Name:          "conferenceRecords/abc/participants/2",
				AnonymousUser: &meet.AnonymousUser{DisplayName: "Guest"},
			},
			wantName: "Guest",
			wantKind: "anonymous",
		},
		{
			name: "phone user",
			input: &meet.Participant{
				Name:      "conferenceRecords/abc/participants/3",
				PhoneUser: &meet.PhoneUser{DisplayName: "+1 555-0100"},
			},
			wantName: "+1 555-0100",
			wantKind: "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toParticipant(tt.input)
			if got.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", got.DisplayName, tt.wantName)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestToRecording(t *testing.T) {
	rec := toRecording(&meet.Recording{
		Name:  "conferenceRecords/abc/recordings/1",
		State: "FILE_GENERATED",
		DriveDestination: &meet.DriveDestination{
			File:      "files/file123",
			ExportUri: "https://drive.google.com/export/file123",
		},
	})

	if rec.DriveFile != "files/file123" {
		t.Errorf("DriveFile = %q, want %q", rec.DriveFile, "files/file123")
	}
	if rec.ExportURI == "" {
		t.Error("ExportURI should not be empty")
	}
}

func TestToConferenceRecord(t *testing.T) {
	record := toConferenceRecord(&meet.ConferenceRecord{
		Name:      "conferenceRecords/abc",
		Space:     "spaces/xyz",
		StartTime: "2025-01-15T10:00:00Z",
	})

	if record.Name != "conferenceRecords/abc" {
		t.Errorf("Name = %q", record.Name)
	}
	if record.Space != "spaces/xyz" {
		t.Errorf("Space = %q", record.Space)
	}
	if record.EndTime != "" {
		t.Errorf("EndTime = %q, want empty for ongoing conference", record.EndTime)
	}
}
