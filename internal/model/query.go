package model

// QueryRequest - prompt는 필수 (빈 문자열은 허용)
type QueryRequest struct {
	Prompt *string `json:"prompt"`
}

type QueryResponse struct {
	Response string `json:"response"`
}

type ClassifyResponse struct {
	Response string `json:"response"`
	Label    string `json:"label"`
}
