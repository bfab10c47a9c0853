// Package diag implements spec.md §7's error taxonomy: programming
// invariant violations are fatal and carry a stack trace (grounded in
// vincecity-arduino-language-server's handler package, which reaches for
// github.com/pkg/errors rather than bare fmt.Errorf whenever it needs to
// report a condition the caller cannot recover from); trivia exhaustion
// is a softer assertion that only panics in strict mode.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Strict selects whether a trivia-exhaustion mismatch (an unclaimed
// comment token, spec.md §7) panics (debug builds) or is silently healed
// by appending the orphan to the root's trailing trivia (release
// builds). cmd/vhdlfmt's --strict-trivia flag sets this.
var Strict = false

// Invariant reports a fatal internal error: a malformed Doc, an empty
// trivia span, or any other condition spec.md §7 calls "not recoverable,
// not expected under a correct parser." Always panics; the caller never
// receives a value.
func Invariant(format string, args ...any) {
	panic(errors.Wrap(fmt.Errorf(format, args...), "vhdlfmt: internal invariant violated"))
}

// TriviaExhaustion reports an unclaimed comment token. In strict mode it
// panics like Invariant; otherwise it returns the error for the caller to
// log while still appending the orphan comment, guaranteeing no data loss
// (spec.md §7).
func TriviaExhaustion(tokenIndex int, text string) error {
	err := errors.Errorf("vhdlfmt: comment token %d (%q) was never claimed by any node", tokenIndex, text)
	if Strict {
		panic(err)
	}
	return err
}
