package forms

import forms "google.golang.org/api/forms/v1"

// FormInfo represents a form's identifying metadata
type FormInfo struct {
	// FormID is the unique form identifier
	FormID string

	// Title is the form title shown to respondents
	Title string

	// DocumentTitle is the title shown in Drive
	DocumentTitle string

	// ResponderURI is the URL respondents use to fill out the form
	ResponderURI string

	// ItemCount is the number of items (questions, sections) on the form
	ItemCount int
}

// Response represents a single submission to a form
type Response struct {
	// ResponseID is the unique response identifier
	ResponseID string

	// Respondent is the respondent's email, if collected
	Respondent string

	// SubmitTime is the RFC 3339 submission timestamp
	SubmitTime string

	// Answers maps question IDs to the respondent's text answers
	Answers map[string][]string
}

func toFormInfo(f *forms.Form) FormInfo {
	info := FormInfo{
		FormID:       f.FormId,
		ResponderURI: f.ResponderUri,
		ItemCount:    len(f.Items),
	}
	if f.Info != nil {
		info.Title = f.Info.Title
		info.DocumentTitle = f.Info.DocumentTitle
	}
	return info
}

func toResponse(r *forms.FormResponse) Response {
	resp := Response{
		ResponseID: r.ResponseId,
		Respondent: r.RespondentEmail,
		SubmitTime: r.LastSubmittedTime,
	}
	if len(r.Answers) > 0 {
		resp.Answers = make(map[string][]string, len(r.Answers))
		for questionID, answer := range r.Answers {
			if answer.TextAnswers == nil {
				continue
			}
			var values []string
			for _, ta := range answer.TextAnswers.Answers {
				values = append(values, ta.Value)
			}
			resp.Answers[questionID] = values
		}
	}
	return resp
}
