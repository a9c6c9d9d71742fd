// Package api serves the recipe advisor over HTTP: the server-rendered form
// page, a JSON endpoint for the same generation call, and a health probe. It
// translates HTTP concerns into form submissions and generator calls and maps
// their errors to safe responses.
package api
