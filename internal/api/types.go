package api

// ExecuteSQLRequest is the body of the guarded SQL tool endpoint
type ExecuteSQLRequest struct {
	Query    string `json:"query" binding:"required"`
	RowLimit int    `json:"row_limit"`
}

// SaveRecipeRequest is the body of the save-recipe tool endpoint
type SaveRecipeRequest struct {
	RecipeText     string `json:"recipe_text" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// WebSearchRequest is the body of the web-search tool endpoint
type WebSearchRequest struct {
	Query      string `json:"query" binding:"required"`
	MaxResults int    `json:"max_results"`
}

// WebSearchResponse wraps formatted search output
type WebSearchResponse struct {
	Success bool   `json:"success"`
	Results string `json:"results,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TranscriptRequest is the body of the youtube-transcript tool endpoint
type TranscriptRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// TranscriptResponse wraps a fetched transcript
type TranscriptResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
}
