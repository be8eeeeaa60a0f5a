package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (D001-D099)
	// ============================================

	"D001": {
		Category:   CategoryConfig,
		Message:    "Cannot read configuration file",
		Detail:     "The configuration file exists but could not be opened or parsed.",
		Suggestion: "Check the file for syntax errors, or remove it to run with defaults.",
	},
	"D002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or malformed.",
	},
	"D003": {
		Category:   CategoryConfig,
		Message:    "Invalid environment override",
		Detail:     "An ADMINDASH_* environment variable could not be parsed.",
		Suggestion: "Booleans accept true/false/1/0, durations use Go syntax such as 300ms.",
	},

	// ============================================
	// Routing Errors (D100-D199)
	// ============================================

	"D100": {
		Category: CategoryRouting,
		Message:  "Invalid route table",
		Detail:   "The route table failed validation at startup.",
	},
	"D101": {
		Category:   CategoryRouting,
		Message:    "Route references an unknown view",
		Detail:     "Every view named by the route table must be registered in the view catalog.",
		Suggestion: "Register the view in internal/views or fix the route entry.",
	},
	"D102": {
		Category: CategoryRouting,
		Message:  "Route references an unknown layout",
	},

	// ============================================
	// Loading Errors (D200-D299)
	// ============================================

	"D200": {
		Category: CategoryLoading,
		Message:  "View failed to load",
	},
	"D201": {
		Category: CategoryLoading,
		Message:  "View failed to render",
	},

	// ============================================
	// Storage Errors (D300-D399)
	// ============================================

	"D300": {
		Category:   CategoryStorage,
		Message:    "CV store unavailable",
		Detail:     "The configured CV storage backend could not be reached.",
		Suggestion: "Check the cv_store section of the configuration.",
	},
	"D301": {
		Category: CategoryStorage,
		Message:  "No saved CV",
	},
	"D302": {
		Category: CategoryStorage,
		Message:  "Saved CV is corrupt",
		Detail:   "The stored document is not valid CV JSON. It will be replaced on the next save.",
	},
	"D303": {
		Category:   CategoryStorage,
		Message:    "Unknown CV store backend",
		Suggestion: "Use one of: memory, file, s3, redis.",
	},

	// ============================================
	// Server Errors (D400-D499)
	// ============================================

	"D400": {
		Category: CategoryServer,
		Message:  "Server failed to start",
	},
	"D401": {
		Category: CategoryServer,
		Message:  "Session not found",
		Detail:   "The session cookie is missing, invalid or the session has expired.",
	},

	// ============================================
	// Mock Errors (D500-D599)
	// ============================================

	"D500": {
		Category:   CategoryMocks,
		Message:    "Request mocking failed to start",
		Suggestion: "Unset ADMINDASH_ENABLE_MOCKS to render without mocks.",
	},
	"D501": {
		Category: CategoryMocks,
		Message:  "Timed out waiting for request mocking",
	},

	// ============================================
	// CLI Errors (D600-D699)
	// ============================================

	"D600": {
		Category:   CategoryCLI,
		Message:    "Unknown output format",
		Suggestion: "Use one of: text, json, yaml.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
