package slides

import (
	"strings"

	slides "google.golang.org/api/slides/v1"
)

// PresentationInfo represents a presentation's identifying metadata
type PresentationInfo struct {
	// PresentationID is the unique presentation identifier
	PresentationID string

	// Title is the presentation title
	Title string

	// SlideIDs are the object IDs of the slides, in presentation order
	SlideIDs []string

	// Locale is the presentation's locale (e.g. "en")
	Locale string
}

// PageInfo represents a single page of a presentation
type PageInfo struct {
	// ObjectID is the page's object ID
	ObjectID string

	// PageType is SLIDE, LAYOUT, MASTER, or NOTES
	PageType string

	// ElementIDs are the object IDs of the elements on the page
	ElementIDs []string
}

// TextBoxOptions controls placement of a new text box or image, in
// points.
type TextBoxOptions struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// TextStyleOptions controls the text style applied to a shape
type TextStyleOptions struct {
	Bold       bool
	Italic     bool
	FontSize   float64
	FontFamily string
}

func toPresentationInfo(p *slides.Presentation) PresentationInfo {
	info := PresentationInfo{
		PresentationID: p.PresentationId,
		Title:          p.Title,
		Locale:         p.Locale,
	}
	for _, slide := range p.Slides {
		info.SlideIDs = append(info.SlideIDs, slide.ObjectId)
	}
	return info
}

func toPageInfo(page *slides.Page) PageInfo {
	info := PageInfo{
		ObjectID: page.ObjectId,
		PageType: page.PageType,
	}
	for _, element := range page.PageElements {
		info.ElementIDs = append(info.ElementIDs, element.ObjectId)
	}
	return info
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}
