// Package generation defines the boundary between the recipe advisor and the
// external text-generation service. It owns the Generator interface, the
// prompt template sent to the language model, and the single GenerationError
// kind that every failure of a generation call collapses into.
package generation
