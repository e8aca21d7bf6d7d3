// Package validator provides a composable set of generic, type-safe validation
// helpers and rule-building utilities for strings, numbers, choices, and
// regular-expression patterns.
//
// The package promotes declarative validation by letting you build small Rule
// values that encapsulate a boolean Check function together with field-level
// error metadata. Rules are evaluated with the Apply helper which aggregates
// any failures into a ValidationErrors slice that satisfies the error
// interface, making it convenient to bubble up multiple field-specific
// problems in a single error return.
//
// # Architecture
//
// Each source file groups a family of rules for a specific domain
// (`string_rules.go`, `numeric_rules.go`, `pattern_rules.go`, etc.). Every
// exported validation function simply constructs and returns a Rule instance;
// there is no hidden global state, therefore the package is completely
// stateless, allocation-light, and goroutine-safe.
//
// Core building blocks:
//   - Rule              – lightweight struct containing Check func and error meta
//   - ValidationError   – describes a single failure with a machine-readable rule code
//   - ValidationErrors  – slice type that implements the error interface
//   - Numeric interface – generic constraint used by numeric helpers
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("player_name", name),
//	    validator.MinLen("player_name", name, 4),
//	    validator.InListString("num_ships", numShips, []string{"1", "2", "3", "4", "5"}),
//	)
//	if err != nil {
//	    if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	        // iterate over field-level rule codes and messages
//	    }
//	}
//
// # Error Handling
//
// ValidationErrors implements the error interface, so you can use
// `errors.As` to detect validation problems while preserving rich details.
// Individual field errors can be inspected with the helper methods Has, Get,
// GetErrors and Fields.
//
// # Performance Considerations
//
// All helpers are simple, allocation-free comparisons or pattern checks.
// MatchesRegex compiles its pattern on every call; use MatchesCompiled with a
// package-level regexp on hot paths.
package validator
