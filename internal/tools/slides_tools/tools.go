package slides_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	slidesapi "google.golang.org/api/slides/v1"

	"github.com/polaralias/google-workspace-mcp/internal/google"
	"github.com/polaralias/google-workspace-mcp/internal/server"
	"github.com/polaralias/google-workspace-mcp/internal/slides"
	"github.com/polaralias/google-workspace-mcp/internal/tools/common"
)

// getSlidesClient retrieves or creates a slides client for the specified account
func getSlidesClient(ctx context.Context, account string, sc *server.ServerContext) (*slides.Client, error) {
	client := sc.SlidesClientForAccount(account)
	if client == nil {
		if !slides.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = slides.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Slides client for account %s: %w", account, err)
		}
		sc.SetSlidesClientForAccount(account, client)
	}
	return client, nil
}

// boxFromArgs builds placement options from x/y/width/height arguments,
// in points. Zero values fall back to the client's defaults.
func boxFromArgs(args map[string]interface{}) slides.TextBoxOptions {
	box := slides.TextBoxOptions{}
	if v, ok := args["x"].(float64); ok {
		box.X = v
	}
	if v, ok := args["y"].(float64); ok {
		box.Y = v
	}
	if v, ok := args["width"].(float64); ok {
		box.Width = v
	}
	if v, ok := args["height"].(float64); ok {
		box.Height = v
	}
	return box
}

func formatPresentation(info *slides.PresentationInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Presentation: %s\nID: %s\n", info.Title, info.PresentationID))
	if info.Locale != "" {
		sb.WriteString(fmt.Sprintf("Locale: %s\n", info.Locale))
	}
	sb.WriteString(fmt.Sprintf("Slides (%d):\n", len(info.SlideIDs)))
	for i, id := range info.SlideIDs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, id))
	}
	return sb.String()
}

// RegisterSlidesTools registers all Google Slides tools with the MCP server
func RegisterSlidesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerPresentationTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register presentation tools: %w", err)
	}
	if err := registerContentTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register content tools: %w", err)
	}
	return nil
}

// registerPresentationTools registers presentation and page tools
func registerPresentationTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get presentation tool
	getPresentationTool := mcp.NewTool("slides_get_presentation",
		mcp.WithDescription("Get a presentation's metadata and slide list"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
	)

	s.AddTool(getPresentationTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.GetPresentation(ctx, presentationID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get presentation: %v", err)), nil
		}
		return mcp.NewToolResultText(formatPresentation(info)), nil
	})

	// Get page tool
	getPageTool := mcp.NewTool("slides_get_page",
		mcp.WithDescription("Get a page of a presentation, including its element IDs"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("pageId",
			mcp.Required(),
			mcp.Description("The object ID of the page"),
		),
	)

	s.AddTool(getPageTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		pageID, ok := args["pageId"].(string)
		if !ok || pageID == "" {
			return mcp.NewToolResultError("pageId is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		page, err := client.GetPage(ctx, presentationID, pageID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get page: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Page %s (%s)\nElements: %s",
			page.ObjectID, page.PageType, strings.Join(page.ElementIDs, ", "))), nil
	})

	// Get page thumbnail tool
	getThumbnailTool := mcp.NewTool("slides_get_page_thumbnail",
		mcp.WithDescription("Get a PNG thumbnail URL for a page"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("pageId",
			mcp.Required(),
			mcp.Description("The object ID of the page"),
		),
	)

	s.AddTool(getThumbnailTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		pageID, ok := args["pageId"].(string)
		if !ok || pageID == "" {
			return mcp.NewToolResultError("pageId is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		url, err := client.GetPageThumbnail(ctx, presentationID, pageID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get page thumbnail: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Thumbnail for page %s:\n%s", pageID, url)), nil
	})

	// Export PDF tool
	exportPDFTool := mcp.NewTool("slides_export_pdf",
		mcp.WithDescription("Export a presentation as PDF. Returns the content base64-encoded."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
	)

	s.AddTool(exportPDFTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := client.ExportPDF(ctx, presentationID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to export PDF: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("PDF export of %s (%d bytes, base64):\n%s",
			presentationID, len(data), base64.StdEncoding.EncodeToString(data))), nil
	})

	if readOnly {
		return nil
	}

	// Create presentation tool
	createPresentationTool := mcp.NewTool("slides_create_presentation",
		mcp.WithDescription("Create a new presentation"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The presentation title"),
		),
	)

	s.AddTool(createPresentationTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		title, ok := args["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		info, err := client.CreatePresentation(ctx, title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create presentation: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created presentation %s (ID: %s)",
			info.Title, info.PresentationID)), nil
	})

	// Create slide tool
	createSlideTool := mcp.NewTool("slides_create_slide",
		mcp.WithDescription("Append a new slide to a presentation"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("layout",
			mcp.Description("The predefined layout, e.g. BLANK, TITLE, TITLE_AND_BODY (default: BLANK)"),
		),
	)

	s.AddTool(createSlideTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		layout, _ := args["layout"].(string)

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		slideID, err := client.CreateSlide(ctx, presentationID, strings.ToUpper(layout))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create slide: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully created slide %s", slideID)), nil
	})

	// Batch update tool
	batchUpdateTool := mcp.NewTool("slides_batch_update",
		mcp.WithDescription("Apply a batch of update requests to a presentation. Requests use the Slides API request JSON format."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("requests",
			mcp.Required(),
			mcp.Description("JSON array of Slides API request objects, e.g. '[{\"createSlide\": {...}}]'"),
		),
	)

	s.AddTool(batchUpdateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		requestsJSON, ok := args["requests"].(string)
		if !ok || requestsJSON == "" {
			return mcp.NewToolResultError("requests is required"), nil
		}

		var requests []*slidesapi.Request
		if err := json.Unmarshal([]byte(requestsJSON), &requests); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid requests JSON: %v", err)), nil
		}
		if len(requests) == 0 {
			return mcp.NewToolResultError("requests must contain at least one request"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		createdIDs, err := client.BatchUpdate(ctx, presentationID, requests)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update presentation: %v", err)), nil
		}

		msg := fmt.Sprintf("Successfully applied %d requests", len(requests))
		if len(createdIDs) > 0 {
			msg += fmt.Sprintf("\nCreated objects: %s", strings.Join(createdIDs, ", "))
		}
		return mcp.NewToolResultText(msg), nil
	})

	return nil
}

// registerContentTools registers text and image tools
func registerContentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	// Add text box tool
	addTextBoxTool := mcp.NewTool("slides_add_text_box",
		mcp.WithDescription("Add a text box with the given text to a page"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("pageId",
			mcp.Required(),
			mcp.Description("The object ID of the page"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text content"),
		),
		mcp.WithNumber("x",
			mcp.Description("Left offset in points"),
		),
		mcp.WithNumber("y",
			mcp.Description("Top offset in points"),
		),
		mcp.WithNumber("width",
			mcp.Description("Width in points"),
		),
		mcp.WithNumber("height",
			mcp.Description("Height in points"),
		),
	)

	s.AddTool(addTextBoxTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		pageID, ok := args["pageId"].(string)
		if !ok || pageID == "" {
			return mcp.NewToolResultError("pageId is required"), nil
		}
		text, ok := args["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("text is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		shapeID, err := client.AddTextBox(ctx, presentationID, pageID, text, boxFromArgs(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add text box: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully added text box %s", shapeID)), nil
	})

	// Set text style tool
	setTextStyleTool := mcp.NewTool("slides_set_text_style",
		mcp.WithDescription("Set the text style of all text in a shape"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("The object ID of the shape"),
		),
		mcp.WithBoolean("bold",
			mcp.Description("Make the text bold"),
		),
		mcp.WithBoolean("italic",
			mcp.Description("Make the text italic"),
		),
		mcp.WithNumber("fontSize",
			mcp.Description("Font size in points"),
		),
		mcp.WithString("fontFamily",
			mcp.Description("Font family, e.g. 'Arial'"),
		),
	)

	s.AddTool(setTextStyleTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		objectID, ok := args["objectId"].(string)
		if !ok || objectID == "" {
			return mcp.NewToolResultError("objectId is required"), nil
		}

		style := slides.TextStyleOptions{}
		style.Bold, _ = args["bold"].(bool)
		style.Italic, _ = args["italic"].(bool)
		if v, ok := args["fontSize"].(float64); ok {
			style.FontSize = v
		}
		style.FontFamily, _ = args["fontFamily"].(string)

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := client.SetTextStyle(ctx, presentationID, objectID, style); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to set text style: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully styled text in %s", objectID)), nil
	})

	// Replace text tool
	replaceTextTool := mcp.NewTool("slides_replace_text",
		mcp.WithDescription("Replace all occurrences of a string throughout a presentation"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("find",
			mcp.Required(),
			mcp.Description("The text to find"),
		),
		mcp.WithString("replace",
			mcp.Required(),
			mcp.Description("The replacement text"),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Whether the search is case-sensitive (default: false)"),
		),
	)

	s.AddTool(replaceTextTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		find, ok := args["find"].(string)
		if !ok || find == "" {
			return mcp.NewToolResultError("find is required"), nil
		}
		replace, ok := args["replace"].(string)
		if !ok {
			return mcp.NewToolResultError("replace is required"), nil
		}
		matchCase, _ := args["matchCase"].(bool)

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		count, err := client.ReplaceText(ctx, presentationID, find, replace, matchCase)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully replaced %d occurrences of %q", count, find)), nil
	})

	// Insert image tool
	insertImageTool := mcp.NewTool("slides_insert_image",
		mcp.WithDescription("Insert an image from a URL onto a page"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("pageId",
			mcp.Required(),
			mcp.Description("The object ID of the page"),
		),
		mcp.WithString("imageUrl",
			mcp.Required(),
			mcp.Description("The publicly accessible image URL"),
		),
		mcp.WithNumber("x",
			mcp.Description("Left offset in points"),
		),
		mcp.WithNumber("y",
			mcp.Description("Top offset in points"),
		),
		mcp.WithNumber("width",
			mcp.Description("Width in points"),
		),
		mcp.WithNumber("height",
			mcp.Description("Height in points"),
		),
	)

	s.AddTool(insertImageTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		account := common.GetAccountFromArgs(ctx, args)

		presentationID, ok := args["presentationId"].(string)
		if !ok || presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		pageID, ok := args["pageId"].(string)
		if !ok || pageID == "" {
			return mcp.NewToolResultError("pageId is required"), nil
		}
		imageURL, ok := args["imageUrl"].(string)
		if !ok || imageURL == "" {
			return mcp.NewToolResultError("imageUrl is required"), nil
		}

		client, err := getSlidesClient(ctx, account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		imageID, err := client.InsertImage(ctx, presentationID, pageID, imageURL, boxFromArgs(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to insert image: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully inserted image %s", imageID)), nil
	})

	return nil
}
