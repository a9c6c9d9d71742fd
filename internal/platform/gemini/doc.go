// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for generating recipes from a dietary request.
//
// This package is an infrastructure adapter: it translates between the
// application's domain models and the Gemini API without exposing the details
// of the external service to the rest of the application.
//
// A generation is a single blocking round trip. The request declares a JSON
// response schema (an array of objects with recipeName, description,
// ingredients and instructions) and asks for application/json output only.
// The returned text is decoded and shape-validated before it becomes
// domain.Recipe values. There is no retry, no streaming and no timeout beyond
// the caller's context.
//
// Every failure, whether transport, safety block, empty output or malformed
// JSON, is logged with its (redacted) detail and surfaced as a
// generation.GenerationError carrying one fixed user-facing message.
package gemini
