package router

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one problem found while building a table.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Group is the group the problem was found in, if any
	Group string

	// Path is the offending pattern, if any
	Path string

	// Message is the human-readable error message
	Message string
}

func (e ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Type))
	if e.Group != "" {
		sb.WriteString(" [" + e.Group + "]")
	}
	if e.Path != "" {
		sb.WriteString(" " + e.Path)
	}
	sb.WriteString(": " + e.Message)
	return sb.String()
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorMissingCatchAll indicates a group without a trailing * entry.
	ErrorMissingCatchAll ValidationErrorType = "MISSING_CATCH_ALL"

	// ErrorCatchAllNotLast indicates a * entry followed by other siblings,
	// or more than one * entry among siblings.
	ErrorCatchAllNotLast ValidationErrorType = "CATCH_ALL_NOT_LAST"

	// ErrorDuplicateRoute indicates two entries of a group with the same
	// pattern shape.
	// Example: /forms/form-elements/switch declared twice
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorInvalidPattern indicates a pattern that does not parse.
	ErrorInvalidPattern ValidationErrorType = "INVALID_PATTERN"

	// ErrorInvalidEntry indicates an entry with neither a view nor a
	// redirect, or with both.
	ErrorInvalidEntry ValidationErrorType = "INVALID_ENTRY"

	// ErrorPrefixConflict indicates a top-level segment claimed twice.
	ErrorPrefixConflict ValidationErrorType = "PREFIX_CONFLICT"

	// ErrorDefaultGroup indicates zero or several groups without prefixes.
	ErrorDefaultGroup ValidationErrorType = "DEFAULT_GROUP"

	// ErrorUnreachable indicates an entry its group can never receive.
	ErrorUnreachable ValidationErrorType = "UNREACHABLE_ROUTE"

	// ErrorRedirectChain indicates a redirect that loops, chains more than
	// MaxRedirects times, or has an invalid target.
	ErrorRedirectChain ValidationErrorType = "REDIRECT_CHAIN"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Has reports whether any error is of type typ.
func (e *MultiValidationError) Has(typ ValidationErrorType) bool {
	for _, ve := range e.Errors {
		if ve.Type == typ {
			return true
		}
	}
	return false
}

// validator accumulates errors while a table is compiled.
type validator struct {
	errors []ValidationError
}

func (v *validator) add(typ ValidationErrorType, group, msg string) {
	v.errors = append(v.errors, ValidationError{Type: typ, Group: group, Message: msg})
}

func (v *validator) addPath(typ ValidationErrorType, group, path, msg string) {
	v.errors = append(v.errors, ValidationError{Type: typ, Group: group, Path: path, Message: msg})
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &MultiValidationError{Errors: v.errors}
}

// compileGroup flattens and checks one group. It returns nil when the group
// is unusable.
func (v *validator) compileGroup(g Group) *compiledGroup {
	if g.Name == "" {
		v.add(ErrorInvalidEntry, "", "group name is required")
		return nil
	}
	cg := &compiledGroup{name: g.Name, layout: g.Layout}
	for _, p := range g.Prefixes {
		if p == "" || strings.ContainsAny(p, "/:*") {
			v.add(ErrorPrefixConflict, g.Name, fmt.Sprintf("invalid prefix %q", p))
			continue
		}
		cg.prefixes = append(cg.prefixes, p)
	}

	n := len(g.Entries)
	if n == 0 || !g.Entries[n-1].IsCatchAll() {
		v.add(ErrorMissingCatchAll, g.Name, "the last entry must be the * catch-all")
		return nil
	}
	if !v.checkSiblings(g.Name, "", g.Entries) {
		return nil
	}

	last := g.Entries[n-1]
	if !v.checkTarget(g.Name, CatchAll, last) {
		return nil
	}
	if len(last.Children) > 0 {
		v.addPath(ErrorInvalidEntry, g.Name, CatchAll, "catch-all cannot have children")
	}
	catchAll, _ := compilePattern(CatchAll)
	cg.catchAll = compiledRoute{pattern: catchAll, view: last.View, redirect: last.Redirect}

	seen := make(map[string]string)
	v.flatten(cg, "", g.Entries[:n-1], seen)
	return cg
}

// flatten appends entries depth first, each parent before its children.
func (v *validator) flatten(cg *compiledGroup, parent string, entries []Entry, seen map[string]string) {
	for _, e := range entries {
		if e.Path == "" {
			v.add(ErrorInvalidPattern, cg.name, "entry with empty path")
			continue
		}
		full := joinPattern(parent, e.Path)
		p, err := compilePattern(full)
		if err != nil {
			v.addPath(ErrorInvalidPattern, cg.name, full, err.Error())
			continue
		}

		if e.View != "" || e.Redirect != "" || len(e.Children) == 0 {
			if v.checkTarget(cg.name, full, e) {
				key := p.key()
				if first, dup := seen[key]; dup {
					v.addPath(ErrorDuplicateRoute, cg.name, full, fmt.Sprintf("same shape as %s", first))
				} else {
					seen[key] = full
					cg.routes = append(cg.routes, compiledRoute{pattern: p, view: e.View, redirect: e.Redirect})
				}
			}
		}

		if len(e.Children) > 0 && v.checkSiblings(cg.name, full, e.Children) {
			v.flatten(cg, full, e.Children, seen)
		}
	}
}

// checkTarget verifies that e has exactly one of View and Redirect.
func (v *validator) checkTarget(group, path string, e Entry) bool {
	switch {
	case e.View != "" && e.Redirect != "":
		v.addPath(ErrorInvalidEntry, group, path, "entry has both a view and a redirect")
		return false
	case e.View == "" && e.Redirect == "":
		v.addPath(ErrorInvalidEntry, group, path, "entry has neither a view nor a redirect")
		return false
	case e.Redirect != "" && !strings.HasPrefix(e.Redirect, "/"):
		v.addPath(ErrorRedirectChain, group, path, fmt.Sprintf("redirect target %q must be absolute", e.Redirect))
		return false
	}
	return true
}

// checkSiblings verifies that at most one sibling is a catch-all and that
// it comes last.
func (v *validator) checkSiblings(group, parent string, entries []Entry) bool {
	ok := true
	for i, e := range entries {
		if e.IsCatchAll() && i != len(entries)-1 {
			v.addPath(ErrorCatchAllNotLast, group, joinPattern(parent, CatchAll), "catch-all must be the last sibling")
			ok = false
		}
	}
	return ok
}

// checkRedirects runs after compilation: every redirect must reach a view
// and every entry must be reachable through its group.
func (v *validator) checkRedirects(t *Table) {
	for _, g := range t.groups {
		rows := make([]compiledRoute, 0, len(g.routes)+1)
		rows = append(rows, g.routes...)
		rows = append(rows, g.catchAll)
		for _, r := range rows {
			if r.pattern.raw != CatchAll && t.groupFor(staticHead(r.pattern)) != g {
				v.addPath(ErrorUnreachable, g.name, r.pattern.raw, "first segment is routed to another group")
				continue
			}
			if r.redirect == "" {
				continue
			}
			// The entry's own redirect is the first hop.
			if _, _, err := t.follow(r.redirect, MaxRedirects-1); err != nil {
				msg := err.Error()
				if errors.Is(err, ErrTooManyRedirects) {
					msg = fmt.Sprintf("redirect to %s does not reach a view within %d hops", r.redirect, MaxRedirects)
				}
				v.addPath(ErrorRedirectChain, g.name, r.pattern.raw, msg)
			}
		}
	}
}

// staticHead returns the first literal segment of p, if any, in the shape
// groupFor expects.
func staticHead(p pattern) []string {
	if len(p.segments) > 0 && p.segments[0].kind == segStatic {
		return []string{p.segments[0].value}
	}
	return nil
}
