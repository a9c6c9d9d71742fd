// Package domain contains the core entities of the recipe advisor: the
// dietary request a user submits and the recipes that come back. It is
// independent of the HTTP layer and of the language model provider.
package domain
