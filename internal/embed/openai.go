package embed

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// maxConcurrentEmbeds bounds parallel embedding calls in EmbedBatch.
const maxConcurrentEmbeds = 10

// OpenAIClient provides embeddings and chat completions through the OpenAI
// API (or any compatible endpoint via a custom base URL).
type OpenAIClient struct {
	client     *openai.Client
	embedModel string
	chatModel  string
	dim        int
}

// NewOpenAIClient creates a client for the given models. The embedding
// dimension follows the model choice.
func NewOpenAIClient(baseURL, apiKey, embedModel, chatModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	dim := 1536
	if embedModel == string(openai.LargeEmbedding3) {
		dim = 3072
	}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(cfg),
		embedModel: embedModel,
		chatModel:  chatModel,
		dim:        dim,
	}, nil
}

// Embed generates an L2-normalized embedding for one text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	v := make([]float32, len(resp.Data[0].Embedding))
	copy(v, resp.Data[0].Embedding)
	l2normalize(v)
	return v, nil
}

// EmbedBatch embeds texts with bounded concurrency, preserving order.
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	errCh := make(chan error, len(texts))
	sem := make(chan struct{}, maxConcurrentEmbeds)

	for i := range texts {
		sem <- struct{}{}
		go func(idx int) {
			defer func() { <-sem }()
			v, err := c.Embed(ctx, texts[idx])
			if err != nil {
				errCh <- fmt.Errorf("embed text %d: %w", idx, err)
				return
			}
			embeddings[idx] = v
			errCh <- nil
		}(i)
	}

	for range texts {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}
	return embeddings, nil
}

// Dimension returns the embedding vector length.
func (c *OpenAIClient) Dimension() int {
	return c.dim
}

// Complete runs a single-turn chat completion for the given prompt.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion generated")
	}
	return resp.Choices[0].Message.Content, nil
}

// l2normalize scales v to unit length in place.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
