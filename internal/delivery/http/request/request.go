package request

type GenerateVideoRequest struct {
	BusinessName string `json:"business_name"`
	HTMLContent  string `json:"html_content"`
}
