// Package analysis provides interfaces and implementations for interacting
// with external AI/LLM services for topic analysis. It abstracts the details
// of LLM API integration (Gemini), allowing the application to score topic
// complexity and suggest sub-concepts without coupling to specific external
// services.
package analysis
