// Package gemini provides implementations for the analysis interface using Google's Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	TopicName   string
	ContextText string
}

// ResponseSchema represents the expected structure of an analysis from the Gemini API
type ResponseSchema struct {
	// Complexity is the 1-10 difficulty score for the topic
	Complexity int `json:"complexity"`

	// Subtopics are 3-5 short sub-concept descriptions
	Subtopics []string `json:"subtopics"`

	// Summary is a one-paragraph overview of the topic
	Summary string `json:"summary"`
}
