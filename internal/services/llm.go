package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// LLMService talks to an OpenAI-compatible chat completions endpoint.
// Configured via LLM_BASE_URL, LLM_TOKEN and LLM_MODEL.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

func GetLLMService() *LLMService {
	if llmService == nil {
		baseURL := os.Getenv("LLM_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		model := os.Getenv("LLM_MODEL")
		if model == "" {
			model = "gpt-4o"
		}
		llmService = &LLMService{
			baseURL: baseURL,
			token:   os.Getenv("LLM_TOKEN"),
			model:   model,
			client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return llmService
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateAnswer asks the model for an answer to a question. The prompt asks
// for a well-structured reply and an explicit "I don't know" when the model
// has nothing.
func (s *LLMService) GenerateAnswer(title, text string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that can answer questions.
Here is the question: %s %s
Please provide a detailed and accurate answer to the question.
Your response should be in a clear and concise format, with proper formatting and structure.
Ensure your answer is well-researched and based on the available information.
If you don't have enough information to answer the question, respond with "I don't know."`, title, text)

	reqBody := ChatRequest{
		Model:     s.model,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 1000,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
