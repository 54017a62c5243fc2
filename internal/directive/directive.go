// Package directive handles simplemath comment directives.
//
// # Supported Directives
//
//	//simplemath:ignore - Suppress fold diagnostics for the next line or same line
//
// # Directive Placement
//
// Directives can be placed:
//   - On the line before the folded expression
//   - On the same line as the folded expression
//   - On a function declaration (function-level ignore)
//   - In the package doc comment (file-level ignore)
//
// # Examples
//
// Line-level ignore:
//
//	//simplemath:ignore
//	return a + b  // not reported
//
// Same-line ignore:
//
//	return a + b  //simplemath:ignore
//
// Function-level ignore:
//
//	//simplemath:ignore
//	func table() int {
//	    // Nothing in this function is reported
//	}
package directive

import "strings"

const directivePrefix = "simplemath:"

// hasDirective checks if a comment contains the named directive.
// Supports both "//simplemath:name" and "// simplemath:name".
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, directivePrefix+name)
}

// IsIgnoreDirective checks if a comment is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }
