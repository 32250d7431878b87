// Package gemini provides an implementation of the analysis.Analyzer interface
// that uses Google's Gemini API for scoring topic complexity and suggesting
// sub-concepts.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's domain logic to Google's external Gemini AI service.
// It translates between the application's domain models and the Gemini API
// without exposing the details of the external service to the core application.
//
// Key components:
//
// 1. TopicAnalyzer:
//   - Implements the analysis.Analyzer interface
//   - Handles communication with the Gemini API
//   - Processes structured responses into analysis results
//
// 2. Prompt Management:
//   - Substitutes topic name and context text into the prompt template
//   - Formats prompts according to Gemini's requirements
//
// 3. Response Processing:
//   - Parses structured JSON responses from the API
//   - Validates responses against expected schema
//   - Clamps complexity and trims the subtopic list to sane bounds
//
// 4. Error Handling:
//   - Implements retry logic with exponential backoff for transient errors
//   - Categorizes and translates API errors to application-specific errors
//   - Handles content filtering and safety measures
//
// Callers are expected to substitute analysis.Fallback() when any error is
// returned; analyzer failure never blocks topic creation.
package gemini
