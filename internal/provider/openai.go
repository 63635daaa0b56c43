package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lingo/internal/domain"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures generated vocabularies
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string // optional, for compatible endpoints
	Model           string
	NativeLanguage  string
	ForeignLanguage string
	Count           int
	Timeout         time.Duration
}

// OpenAIProvider asks a chat model for a vocabulary list
type OpenAIProvider struct {
	client *openai.Client
	config OpenAIConfig
}

// NewOpenAIProvider creates the "openai" provider
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.NativeLanguage == "" {
		cfg.NativeLanguage = "en"
	}
	if cfg.ForeignLanguage == "" {
		cfg.ForeignLanguage = "es"
	}
	if cfg.Count <= 0 {
		cfg.Count = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Name returns "openai"
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type generatedVocabulary struct {
	WordSets []struct {
		Category    string `json:"category"`
		NativeWord  string `json:"nativeWord"`
		ForeignWord string `json:"foreignWord"`
	} `json:"wordSets"`
}

// GetData requests a fresh vocabulary list from the model
func (p *OpenAIProvider) GetData(ctx context.Context) ([]domain.WordSet, error) {
	if p.config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a language teacher building beginner vocabulary lists. Reply with JSON only.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`List %d common words for a learner whose language is '%s' studying '%s'.
Group them into short categories such as "Food" or "Animals".
Reply as {"wordSets":[{"category":"...","nativeWord":"...","foreignWord":"..."}]}`,
					p.config.Count, p.config.NativeLanguage, p.config.ForeignLanguage),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var generated generatedVocabulary
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &generated); err != nil {
		return nil, fmt.Errorf("parse OpenAI vocabulary: %w", err)
	}

	sets := make([]domain.WordSet, 0, len(generated.WordSets))
	for _, entry := range generated.WordSets {
		sets = append(sets, domain.WordSet{
			Category:        entry.Category,
			NativeLanguage:  p.config.NativeLanguage,
			ForeignLanguage: p.config.ForeignLanguage,
			NativeWord:      entry.NativeWord,
			ForeignWord:     entry.ForeignWord,
		})
	}
	return sets, nil
}
