package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/llm"
)

// genaiModels is the subset of *genai.Models used by the runtime.
type genaiModels interface {
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIRuntime serves the model through the Gemini API, which hosts the Gemma
// instruction-tuned checkpoints. Tokenization happens on the API side.
type GenAIRuntime struct {
	apiKey     string
	httpClient *http.Client
	newModels  func(ctx context.Context) (genaiModels, error)
}

func NewGenAIRuntime(cfg config.ModelConfig) *GenAIRuntime {
	r := &GenAIRuntime{
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
	r.newModels = r.dial
	return r
}

func (r *GenAIRuntime) dial(ctx context.Context) (genaiModels, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     r.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: r.httpClient,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (r *GenAIRuntime) Load(ctx context.Context, modelID string) (llm.Tokenizer, llm.Model, error) {
	if r.apiKey == "" {
		return nil, nil, fmt.Errorf("missing AI_API_KEY")
	}
	models, err := r.newModels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	name := genaiModelName(modelID)
	if _, err := models.Get(ctx, name, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load model %s: %w", name, err)
	}
	return llm.TemplateTokenizer{}, &GenAIModel{models: models, name: name}, nil
}

// genaiModelName strips the hub organisation prefix: google/gemma-3-1b-it -> gemma-3-1b-it
func genaiModelName(modelID string) string {
	return strings.TrimPrefix(strings.TrimSpace(modelID), "google/")
}

type GenAIModel struct {
	models genaiModels
	name   string
}

func (m *GenAIModel) Generate(ctx context.Context, input llm.Sequence, maxNewTokens int) (llm.Sequence, error) {
	contents := toGenAIContents(llm.ParseTurns(input))
	if len(contents) == 0 {
		return nil, fmt.Errorf("prompt has no chat turns")
	}

	res, err := m.models.GenerateContent(ctx, m.name, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxNewTokens),
	})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil {
		return nil, fmt.Errorf("empty generation result")
	}

	// SAFETY 등으로 차단된 응답은 빈 텍스트로 돌아오므로 실패로 처리
	text := res.Text()
	if reason := res.Candidates[0].FinishReason; text == "" && reason != "" && reason != genai.FinishReasonStop {
		return nil, fmt.Errorf("generation stopped without text: finish reason %s", reason)
	}

	out := make(llm.Sequence, 0, len(input)+2)
	out = append(out, input...)
	return append(out,
		llm.Token{ID: -1, Text: text},
		llm.Token{ID: -1, Text: llm.EndOfTurn, Special: true},
	), nil
}

func toGenAIContents(turns []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == llm.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return contents
}
