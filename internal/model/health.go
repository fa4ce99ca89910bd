package model

// HealthResponse - error는 모델 로드 실패 시에만 포함
type HealthResponse struct {
	Model  string  `json:"model"`
	Loaded bool    `json:"loaded"`
	Error  *string `json:"error,omitempty"`
}

type ReadyResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
