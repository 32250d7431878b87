package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"github.com/halverson/recall-api/internal/analysis"
	"github.com/halverson/recall-api/internal/config"
	"google.golang.org/genai"
)

// defaultPromptTemplate asks the model for a strict-JSON analysis of a topic.
const defaultPromptTemplate = `You are helping plan a spaced-repetition study schedule.

Analyze the following learning topic and respond with a single JSON object,
no markdown fences, matching exactly:
{"complexity": <integer 1-10>, "subtopics": [<3 to 5 short strings>], "summary": <one paragraph>}

Topic: {{.TopicName}}
Context: {{.ContextText}}
`

// TopicAnalyzer implements the analysis.Analyzer interface using
// Google's Gemini API to score topics and suggest sub-concepts.
type TopicAnalyzer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains analyzer-specific configuration
	config config.AnalysisConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure TopicAnalyzer implements the analysis.Analyzer interface
var _ analysis.Analyzer = (*TopicAnalyzer)(nil)

// NewTopicAnalyzer creates a new instance of TopicAnalyzer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - config: Analysis configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized TopicAnalyzer or an error if initialization fails
func NewTopicAnalyzer(ctx context.Context, logger *slog.Logger, cfg config.AnalysisConfig) (*TopicAnalyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", analysis.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", analysis.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("analysis").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			analysis.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			analysis.ErrInvalidConfig, err)
	}

	return &TopicAnalyzer{
		logger:         logger.With(slog.String("component", "topic_analyzer")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// AnalyzeTopic scores the named topic using the supplied context text.
// Any returned error should be answered with analysis.Fallback() by the
// caller; this method never blocks topic creation on its own.
func (a *TopicAnalyzer) AnalyzeTopic(ctx context.Context, topicName, contextText string) (*analysis.Result, error) {
	prompt, err := a.createPrompt(ctx, topicName, contextText)
	if err != nil {
		return nil, err
	}

	response, err := a.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return a.parseResponse(ctx, response)
}

// createPrompt generates a prompt string from the template with the provided
// topic name and context text.
func (a *TopicAnalyzer) createPrompt(ctx context.Context, topicName, contextText string) (string, error) {
	if topicName == "" {
		return "", ErrEmptyTopicName
	}

	data := promptData{
		TopicName:   topicName,
		ContextText: contextText,
	}

	a.logger.DebugContext(ctx, "Generating prompt from template",
		"topic_length", len(topicName),
		"context_length", len(contextText))

	var promptBuffer bytes.Buffer
	if err := a.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using exponential backoff
// with jitter between retries for transient errors. Permanent errors (like content being
// blocked by safety filters) are returned immediately without retrying.
func (a *TopicAnalyzer) callGeminiWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	maxRetries := a.config.MaxRetries
	baseDelaySeconds := a.config.RetryDelaySeconds
	attempt := 0
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		a.logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", 2)
		maxRetries = 2
	}

	if baseDelaySeconds < 1 {
		a.logger.WarnContext(ctx, "Invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt <= maxRetries {
		attemptNum := attempt + 1 // For logging (1-based)
		a.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		var response *ResponseSchema
		var isTransientError bool

		resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
		if err != nil {
			// Assume transient error by default
			isTransientError = true
			a.logger.ErrorContext(ctx, "Gemini API call error",
				"error", err,
				"attempt", attemptNum)
		} else {
			response, err = extractResponse(resp)
		}

		if err == nil {
			a.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum)
			return response, nil
		}

		a.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors are returned immediately
		if errors.Is(err, analysis.ErrContentBlocked) || errors.Is(err, analysis.ErrInvalidResponse) {
			a.logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"error_type", err)
			return nil, err
		}

		if attempt >= maxRetries {
			a.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				analysis.ErrTransientFailure, maxRetries)
		}

		if !isTransientError {
			a.logger.WarnContext(ctx, "Non-transient error occurred, not retrying")
			return nil, err
		}

		// Calculate exponential backoff with jitter
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5 // Between 0.5 and 1.0
		delaySeconds := backoffSeconds * jitterFactor
		delay := time.Duration(delaySeconds * float64(time.Second))

		a.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay_seconds", delaySeconds)

		select {
		case <-time.After(delay):
			// Continue to next retry
		case <-ctx.Done():
			a.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return nil, fmt.Errorf("%w: %v", analysis.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	return nil, fmt.Errorf("%w: failed after %d attempts",
		analysis.ErrTransientFailure, attempt)
}

// extractResponse validates a Gemini response and decodes the JSON payload
// carried in its text parts.
func extractResponse(resp *genai.GenerateContentResponse) (*ResponseSchema, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", analysis.ErrInvalidResponse)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", analysis.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", analysis.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", analysis.ErrInvalidResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", analysis.ErrInvalidResponse, err)
	}

	return &parsed, nil
}

// parseResponse converts a ResponseSchema from the Gemini API into an
// analysis.Result, clamping the complexity score and bounding the subtopic
// list so downstream components always see valid input.
func (a *TopicAnalyzer) parseResponse(ctx context.Context, response *ResponseSchema) (*analysis.Result, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", analysis.ErrInvalidResponse)
	}

	if len(response.Subtopics) == 0 {
		return nil, fmt.Errorf("%w: no subtopics in response", analysis.ErrInvalidResponse)
	}

	subtopics := response.Subtopics
	if len(subtopics) > 5 {
		subtopics = subtopics[:5]
	}

	result := &analysis.Result{
		Complexity: analysis.ClampComplexity(response.Complexity),
		Subtopics:  subtopics,
		Summary:    response.Summary,
	}

	a.logger.InfoContext(ctx, "Successfully parsed API response",
		"complexity", result.Complexity,
		"subtopic_count", len(result.Subtopics))

	return result, nil
}
