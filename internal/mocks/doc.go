// Package mocks provides MockGenerator, a configurable generation.Generator
// for tests. It records every request it receives and can return fixed
// recipes, fail the way the Gemini client does, or block until released so
// tests can observe a form mid-submission.
package mocks
