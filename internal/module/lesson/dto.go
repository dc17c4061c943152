package lesson

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" example:"Explain the Pythagorean theorem"`
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Code string `json:"code"`
}

// GenerateResponse is a successful generation. Absent sections are null.
type GenerateResponse struct {
	Code        *string `json:"code"`
	Narration   *string `json:"narration"`
	Explanation *string `json:"explanation"`
	VideoURL    *string `json:"video_url"`
}

// RenderResponse is a successful render-only request.
type RenderResponse struct {
	Code     string `json:"code"`
	VideoURL string `json:"video_url"`
}

// ErrorResponse documents the JSON body of every failed request for the
// swagger docs. Handlers write the map built by AppError.ToResponse, which
// has this shape. The remaining fields are only present, possibly null, when
// rendering failed after code was produced.
type ErrorResponse struct {
	Error       string  `json:"error"`
	Details     string  `json:"details,omitempty"`
	Code        *string `json:"code,omitempty"`
	Narration   *string `json:"narration,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
}

// ToResponse converts a result to its API form.
func (r *Result) ToResponse() *GenerateResponse {
	code := r.Code
	url := r.VideoURL
	return &GenerateResponse{
		Code:        &code,
		Narration:   r.Sections.Narration,
		Explanation: r.Sections.Explanation,
		VideoURL:    &url,
	}
}
