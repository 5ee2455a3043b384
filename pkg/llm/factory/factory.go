package factory

import (
	"fmt"

	"weavai-be/pkg/llm"
	"weavai-be/pkg/llm/ollama"
	"weavai-be/pkg/llm/openai"
)

// NewLLMProvider builds an LLM backend by name. An empty providerType
// returns (nil, nil): callers treat a nil provider as "LLM features off".
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "":
		return nil, nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
