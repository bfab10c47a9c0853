// Package token defines the lexical token stream contract the trivia binder
// and the VHDL tokenizer share. A Stream exposes both the default channel
// (the tokens a parser consumes) and the hidden channels (comments and
// newlines) a parser skips but the binder must see.
package token

// Channel classifies which stream a token belongs to.
type Channel int

const (
	// Default is the channel a parser reads from.
	Default Channel = iota
	// Comments holds line (--) comment tokens.
	Comments
	// Newlines holds one token per source newline.
	Newlines
)

// Kind identifies a token's lexical category on the Default channel.
// Comments and Newlines tokens always carry KindComment / KindNewline
// regardless of this enumeration's remaining values.
type Kind int

const (
	KindEOF Kind = iota
	KindIdent
	KindKeyword
	KindInt
	KindReal
	KindString
	KindChar
	KindPunct  // ; , ( ) [ ] : := => etc.
	KindOp     // + - * / & ** <= etc. and alphabetic operators like "and"
	KindAttr   // '
	KindComment
	KindNewline
)

// Token is one lexical atom, addressable by its position in the stream.
type Token struct {
	Index   int
	Channel Channel
	Kind    Kind
	Text    string
	Line    int
	Col     int
}

// Stream is the read-only contract §6.1 of the spec requires: random
// access by index plus, for any index on the Default channel, the runs of
// hidden tokens immediately to its left and right.
type Stream interface {
	Get(i int) Token
	Size() int
	HiddenToLeft(i int) []Token
	HiddenToRight(i int) []Token
}

// SliceStream is the simplest possible Stream: a flat token slice plus a
// precomputed index of hidden-token runs between each pair of adjacent
// default-channel tokens.
type SliceStream struct {
	tokens []Token
	// hiddenBefore[i] is the run of hidden tokens immediately preceding the
	// default-channel token whose Index is i (or, for i == Size(), the
	// trailing run after the last default token).
	hiddenBefore map[int][]Token
}

// NewSliceStream builds a Stream from a flat, already-lexed token slice.
// Tokens must be in source order and share the Index field with their
// position in the slice.
func NewSliceStream(tokens []Token) *SliceStream {
	s := &SliceStream{tokens: tokens, hiddenBefore: map[int][]Token{}}
	var run []Token
	for _, t := range tokens {
		if t.Channel != Default {
			run = append(run, t)
			continue
		}
		if len(run) > 0 {
			s.hiddenBefore[t.Index] = run
			run = nil
		}
	}
	if len(run) > 0 {
		s.hiddenBefore[len(tokens)] = run
	}
	return s
}

func (s *SliceStream) Get(i int) Token {
	if i < 0 || i >= len(s.tokens) {
		return Token{Index: i, Kind: KindEOF}
	}
	return s.tokens[i]
}

func (s *SliceStream) Size() int { return len(s.tokens) }

// HiddenToLeft returns the hidden-token run immediately preceding the
// default-channel token at index i, in source order.
func (s *SliceStream) HiddenToLeft(i int) []Token {
	return s.hiddenBefore[i]
}

// HiddenToRight returns the hidden-token run immediately following the
// default-channel token at index i, which is the run preceding i+1's next
// default-channel token. Since HiddenToLeft is indexed by the default token
// that follows a run, finding "to the right of i" means scanning forward to
// the next default token and returning the run attached to it, provided
// that run starts after i.
func (s *SliceStream) HiddenToRight(i int) []Token {
	for j := i + 1; j <= len(s.tokens); j++ {
		if j == len(s.tokens) {
			return s.hiddenBefore[j]
		}
		if s.tokens[j].Channel == Default {
			return s.hiddenBefore[j]
		}
	}
	return nil
}
