// text-generation-inference(TGI) 서버와 HTTP 통신하는 모델 런타임
//
// 환경변수:
//   - TGI_URL: TGI 서버 URL (예: http://tgi.llm.svc:8080)
//
// 사용하는 엔드포인트:
//   - GET /info: 로드된 모델 확인
//   - POST /tokenize: 채팅 템플릿 토큰화
//   - POST /generate: 토큰 생성

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/llm"
)

type TGIRuntime struct {
	baseURL    string
	httpClient *http.Client
}

// TGIInfoResponse - GET /info 응답 (사용하는 필드만)
type TGIInfoResponse struct {
	ModelID string `json:"model_id"`
}

type TGITokenizeRequest struct {
	Inputs           string `json:"inputs"`
	AddSpecialTokens bool   `json:"add_special_tokens"`
}

type TGISimpleToken struct {
	ID   int32  `json:"id"`
	Text string `json:"text"`
}

type TGIGenerateRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters TGIGenerateParameters `json:"parameters"`
}

type TGIGenerateParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	Details        bool `json:"details"`
	ReturnFullText bool `json:"return_full_text"`
}

type TGIGenerateResponse struct {
	GeneratedText string              `json:"generated_text"`
	Details       *TGIGenerateDetails `json:"details,omitempty"`
}

type TGIGenerateDetails struct {
	FinishReason string     `json:"finish_reason"`
	Tokens       []TGIToken `json:"tokens"`
}

type TGIToken struct {
	ID      int32   `json:"id"`
	Text    string  `json:"text"`
	Logprob float64 `json:"logprob"`
	Special bool    `json:"special"`
}

func NewTGIRuntime(cfg config.ModelConfig) *TGIRuntime {
	return &TGIRuntime{
		baseURL: strings.TrimRight(cfg.TGIURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// Load checks that the server is up and serves the requested model.
func (r *TGIRuntime) Load(ctx context.Context, modelID string) (llm.Tokenizer, llm.Model, error) {
	var info TGIInfoResponse
	if err := r.do(ctx, http.MethodGet, "/info", nil, &info); err != nil {
		return nil, nil, err
	}
	if !sameModel(info.ModelID, modelID) {
		return nil, nil, fmt.Errorf("tgi serves model %q, expected %q", info.ModelID, modelID)
	}
	return &tgiTokenizer{rt: r}, &TGIModel{rt: r}, nil
}

func sameModel(served, wanted string) bool {
	norm := func(s string) string {
		return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "google/")
	}
	return norm(served) == norm(wanted)
}

type tgiTokenizer struct {
	rt       *TGIRuntime
	template llm.ChatTemplate
}

func (t *tgiTokenizer) ApplyChatTemplate(ctx context.Context, messages []llm.Message, addGenerationPrompt bool) (llm.Sequence, error) {
	text := llm.DecodeText(t.template.Render(messages, addGenerationPrompt), false)

	var tokens []TGISimpleToken
	if err := t.rt.do(ctx, http.MethodPost, "/tokenize", TGITokenizeRequest{Inputs: text}, &tokens); err != nil {
		return nil, err
	}
	seq := make(llm.Sequence, 0, len(tokens))
	for _, tok := range tokens {
		seq = append(seq, llm.Token{ID: tok.ID, Text: tok.Text, Special: llm.IsSpecial(tok.Text)})
	}
	return seq, nil
}

func (t *tgiTokenizer) Decode(seq llm.Sequence, skipSpecialTokens bool) string {
	return llm.DecodeText(seq, skipSpecialTokens)
}

type TGIModel struct {
	rt *TGIRuntime
}

func (m *TGIModel) Generate(ctx context.Context, input llm.Sequence, maxNewTokens int) (llm.Sequence, error) {
	// 서버가 <bos>를 다시 붙이므로 제거
	inputs := strings.TrimPrefix(llm.DecodeText(input, false), llm.BOS)

	req := TGIGenerateRequest{
		Inputs: inputs,
		Parameters: TGIGenerateParameters{
			MaxNewTokens:   maxNewTokens,
			Details:        true,
			ReturnFullText: false,
		},
	}
	var resp TGIGenerateResponse
	if err := m.rt.do(ctx, http.MethodPost, "/generate", req, &resp); err != nil {
		return nil, err
	}

	out := make(llm.Sequence, 0, len(input)+maxNewTokens)
	out = append(out, input...)
	if resp.Details == nil || len(resp.Details.Tokens) == 0 {
		return append(out, llm.Token{ID: -1, Text: resp.GeneratedText}), nil
	}
	for _, tok := range resp.Details.Tokens {
		out = append(out, llm.Token{ID: tok.ID, Text: tok.Text, Special: tok.Special || llm.IsSpecial(tok.Text)})
	}
	return out, nil
}

func (r *TGIRuntime) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal tgi request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to tgi: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tgi returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
