package slides

import (
	"context"
	"fmt"
	"io"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"

	"github.com/polaralias/google-workspace-mcp/internal/google"
)

// Client wraps the Google Slides service. A Drive service is carried
// alongside for PDF export.
type Client struct {
	svc     *slides.Service
	drive   *drive.Service
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

// NewClientForAccount creates a new Slides client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := slides.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		svc:     svc,
		drive:   driveSvc,
		account: account,
	}, nil
}

// NewClient creates a new Slides client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreatePresentation creates a new presentation with the given title
func (c *Client) CreatePresentation(ctx context.Context, title string) (*PresentationInfo, error) {
	p := &slides.Presentation{
		Title: title,
	}

	created, err := c.svc.Presentations.Create(p).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	result := toPresentationInfo(created)
	return &result, nil
}

// GetPresentation retrieves a presentation's metadata and slide list
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*PresentationInfo, error) {
	p, err := c.svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", presentationID, err)
	}

	result := toPresentationInfo(p)
	return &result, nil
}

// BatchUpdate applies a list of Slides API requests to a presentation
// and returns the object IDs created by the requests, if any.
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, requests []*slides.Request) ([]string, error) {
	req := &slides.BatchUpdatePresentationRequest{
		Requests: requests,
	}

	resp, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch update presentation %s: %w", presentationID, err)
	}

	var created []string
	for _, r := range resp.Replies {
		switch {
		case r.CreateSlide != nil:
			created = append(created, r.CreateSlide.ObjectId)
		case r.CreateShape != nil:
			created = append(created, r.CreateShape.ObjectId)
		case r.CreateImage != nil:
			created = append(created, r.CreateImage.ObjectId)
		}
	}

	return created, nil
}

// GetPage retrieves a single page of a presentation
func (c *Client) GetPage(ctx context.Context, presentationID, pageID string) (*PageInfo, error) {
	page, err := c.svc.Presentations.Pages.Get(presentationID, pageID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", pageID, err)
	}

	result := toPageInfo(page)
	return &result, nil
}

// GetPageThumbnail returns the content URL of a page's thumbnail image
func (c *Client) GetPageThumbnail(ctx context.Context, presentationID, pageID string) (string, error) {
	thumb, err := c.svc.Presentations.Pages.GetThumbnail(presentationID, pageID).
		ThumbnailPropertiesMimeType("PNG").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get thumbnail for page %s: %w", pageID, err)
	}

	return thumb.ContentUrl, nil
}

// CreateSlide appends a new slide using a predefined layout
// (e.g. "TITLE_AND_BODY", "BLANK"). Empty layout means BLANK.
func (c *Client) CreateSlide(ctx context.Context, presentationID, layout string) (string, error) {
	if layout == "" {
		layout = "BLANK"
	}

	requests := []*slides.Request{
		{
			CreateSlide: &slides.CreateSlideRequest{
				SlideLayoutReference: &slides.LayoutReference{
					PredefinedLayout: layout,
				},
			},
		},
	}

	created, err := c.BatchUpdate(ctx, presentationID, requests)
	if err != nil {
		return "", err
	}
	if len(created) == 0 {
		return "", fmt.Errorf("create slide returned no object ID")
	}

	return created[0], nil
}

// AddTextBox adds a text box with the given text to a page. Position and
// size are in points.
func (c *Client) AddTextBox(ctx context.Context, presentationID, pageID, text string, box TextBoxOptions) (string, error) {
	element := &slides.PageElementProperties{
		PageObjectId: pageID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: box.Width, Unit: "PT"},
			Height: &slides.Dimension{Magnitude: box.Height, Unit: "PT"},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: box.X,
			TranslateY: box.Y,
			Unit:       "PT",
		},
	}

	requests := []*slides.Request{
		{
			CreateShape: &slides.CreateShapeRequest{
				ShapeType:         "TEXT_BOX",
				ElementProperties: element,
			},
		},
	}

	created, err := c.BatchUpdate(ctx, presentationID, requests)
	if err != nil {
		return "", err
	}
	if len(created) == 0 {
		return "", fmt.Errorf("create shape returned no object ID")
	}
	shapeID := created[0]

	insert := []*slides.Request{
		{
			InsertText: &slides.InsertTextRequest{
				ObjectId: shapeID,
				Text:     text,
			},
		},
	}
	if _, err := c.BatchUpdate(ctx, presentationID, insert); err != nil {
		return "", err
	}

	return shapeID, nil
}

// SetTextStyle updates the text style of all text in a shape
func (c *Client) SetTextStyle(ctx context.Context, presentationID, objectID string, style TextStyleOptions) error {
	textStyle := &slides.TextStyle{}
	var fields []string

	if style.Bold {
		textStyle.Bold = true
		fields = append(fields, "bold")
	}
	if style.Italic {
		textStyle.Italic = true
		fields = append(fields, "italic")
	}
	if style.FontSize > 0 {
		textStyle.FontSize = &slides.Dimension{Magnitude: style.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if style.FontFamily != "" {
		textStyle.FontFamily = style.FontFamily
		fields = append(fields, "fontFamily")
	}
	if len(fields) == 0 {
		return fmt.Errorf("no style fields to update")
	}

	requests := []*slides.Request{
		{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId: objectID,
				Style:    textStyle,
				TextRange: &slides.Range{
					Type: "ALL",
				},
				Fields: joinFields(fields),
			},
		},
	}

	_, err := c.BatchUpdate(ctx, presentationID, requests)
	return err
}

// ReplaceText replaces all occurrences of a string throughout the
// presentation and returns the number of replacements.
func (c *Client) ReplaceText(ctx context.Context, presentationID, find, replace string, matchCase bool) (int64, error) {
	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				ReplaceAllText: &slides.ReplaceAllTextRequest{
					ContainsText: &slides.SubstringMatchCriteria{
						Text:      find,
						MatchCase: matchCase,
					},
					ReplaceText: replace,
				},
			},
		},
	}

	resp, err := c.svc.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to replace text in %s: %w", presentationID, err)
	}

	var count int64
	for _, r := range resp.Replies {
		if r.ReplaceAllText != nil {
			count += r.ReplaceAllText.OccurrencesChanged
		}
	}

	return count, nil
}

// InsertImage inserts an image from a publicly accessible URL onto a page
func (c *Client) InsertImage(ctx context.Context, presentationID, pageID, imageURL string, box TextBoxOptions) (string, error) {
	element := &slides.PageElementProperties{
		PageObjectId: pageID,
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: box.X,
			TranslateY: box.Y,
			Unit:       "PT",
		},
	}
	if box.Width > 0 && box.Height > 0 {
		element.Size = &slides.Size{
			Width:  &slides.Dimension{Magnitude: box.Width, Unit: "PT"},
			Height: &slides.Dimension{Magnitude: box.Height, Unit: "PT"},
		}
	}

	requests := []*slides.Request{
		{
			CreateImage: &slides.CreateImageRequest{
				Url:               imageURL,
				ElementProperties: element,
			},
		},
	}

	created, err := c.BatchUpdate(ctx, presentationID, requests)
	if err != nil {
		return "", err
	}
	if len(created) == 0 {
		return "", fmt.Errorf("create image returned no object ID")
	}

	return created[0], nil
}

// ExportPDF exports a presentation as PDF via the Drive API
func (c *Client) ExportPDF(ctx context.Context, presentationID string) ([]byte, error) {
	resp, err := c.drive.Files.Export(presentationID, "application/pdf").Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export presentation %s: %w", presentationID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF export of %s: %w", presentationID, err)
	}

	return data, nil
}
