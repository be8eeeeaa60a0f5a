// Package errors provides structured, actionable errors for admindash.
//
// Every DashError carries a code from the registry, a category, a short
// message and optionally a longer detail, a hint and the wrapped cause.
//
// # Error Categories
//
//   - config: configuration files and environment overrides
//   - routing: route table construction and the view catalog
//   - loading: deferred view loading and rendering
//   - storage: CV store backends
//   - server: HTTP server and sessions
//   - mocks: the request-mocking worker
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("D002").
//	    WithDetail(`loader.min_delay: time: invalid duration "fast"`).
//	    WithSuggestion(`Use a Go duration such as "300ms"`)
//
//	fmt.Print(err.Format())
//	// ERROR D002: Invalid configuration
//	//
//	//   loader.min_delay: time: invalid duration "fast"
//	//
//	//   Hint: Use a Go duration such as "300ms"
package errors
