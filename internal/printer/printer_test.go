package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/lexvhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/parsevhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/printer"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/trivia"
)

// format runs the whole pipeline spec.md §2 describes: lex, parse, bind
// trivia, print. This is the same sequence cmd/vhdlfmt.format uses.
func format(t *testing.T, src string, cfg config.Config) string {
	t.Helper()
	stream := lexvhdl.Lex(src)
	file, parseErrs := parsevhdl.Parse(stream)
	require.Empty(t, parseErrs, "unexpected parse errors for %q", src)
	trivia.Bind(stream, file)
	return printer.Print(file, cfg)
}

// parseOnly is format minus the final printer.Print call, used by the
// idempotence property below.
func parseOnly(t *testing.T, src string) *ast.File {
	t.Helper()
	stream := lexvhdl.Lex(src)
	file, parseErrs := parsevhdl.Parse(stream)
	require.Empty(t, parseErrs, "unexpected parse errors for %q", src)
	trivia.Bind(stream, file)
	return file
}

// --- spec.md §8 worked scenarios S1-S6 ---

func TestS1_MinimalEntity(t *testing.T) {
	t.Parallel()

	out := format(t, `entity Minimal is end Minimal;`, config.Default())
	assert.Equal(t, "entity Minimal is\nend Minimal;\n", out)
}

func TestS2_PortsWithAlignment(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 10
	cfg.AlignSignals.Port = true

	out := format(t, `entity E is port ( clk : in std_logic; data_valid : out std_logic ); end;`, cfg)
	want := "entity E is\n" +
		"  port (\n" +
		"    clk        : in  std_logic;\n" +
		"    data_valid : out std_logic\n" +
		"  );\n" +
		"end;\n"
	assert.Equal(t, want, out)
}

func TestS3_ConditionalConcurrentAssignBreaks(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 20

	out := format(t, `architecture A of E is begin y <= a when sel = '1' else b; end A;`, cfg)
	// Nested two spaces inside "architecture ... begin" (cfg.Indent), the
	// continuation hangs at the column "y <= " ends (2 + 5 = 7 spaces).
	assert.Contains(t, out, "y <= a when sel = '1' else\n       b;")
}

func TestS4_AggregateWithOthers(t *testing.T) {
	t.Parallel()

	out := format(t, `architecture A of E is begin vec <= (others => '0'); end A;`, config.Default())
	assert.Contains(t, out, "vec <= (others => '0');")
}

func TestS5_TriviaPreservationWithBlankLines(t *testing.T) {
	t.Parallel()

	src := "entity E is generic ( one : integer := 1;\n\n-- test\n\ntwo : integer := 2 ); end E;"
	out := format(t, src, config.Default())

	assert.Contains(t, out, "-- test")
	assert.Equal(t, 1, strings.Count(out, "-- test"), "comment must appear exactly once")

	lines := strings.Split(out, "\n")
	idx := -1
	for i, l := range lines {
		if strings.Contains(l, "-- test") {
			idx = i
			break
		}
	}
	require.NotEqual(t, -1, idx, "comment line not found")
	require.True(t, idx > 0 && idx < len(lines)-1)
	assert.Empty(t, strings.TrimSpace(lines[idx-1]), "exactly one blank line before -- test")
	assert.Empty(t, strings.TrimSpace(lines[idx+1]), "exactly one blank line after -- test")
	if idx >= 2 {
		assert.NotEmpty(t, strings.TrimSpace(lines[idx-2]), "no more than one blank line before -- test")
	}
	if idx+2 < len(lines) {
		assert.NotEmpty(t, strings.TrimSpace(lines[idx+2]), "no more than one blank line after -- test")
	}
}

func TestS6_ProcessWithSensitivityDeclsAndBody(t *testing.T) {
	t.Parallel()

	src := `process(clk) variable counter : integer := 0; constant MAX : integer := 10; begin counter := 0; end process;`
	out := format(t, "architecture A of E is begin "+src+" end A;", config.Default())

	want := "process(clk)\n" +
		"    variable counter : integer := 0;\n" +
		"    constant MAX : integer := 10;\n" +
		"  begin\n" +
		"    counter := 0;\n" +
		"  end process;"
	assert.Contains(t, out, want)
}

func TestLoop_RepeatedEndLabelIsPreserved(t *testing.T) {
	t.Parallel()

	src := `architecture A of E is begin process begin
outer: for i in 0 to 7 loop
  q(i) <= '0';
end loop outer;
end process; end A;`
	out := format(t, src, config.Default())
	assert.Contains(t, out, "end loop outer;")
}

// --- spec.md §8 quantified invariants ---

func TestProperty_CommentPreservation(t *testing.T) {
	t.Parallel()

	src := `-- header comment
entity E is -- trailing on entity line
  generic ( n : integer := 1 ); -- generic trailer
end E; -- end trailer
`
	out := format(t, src, config.Default())

	for _, want := range []string{
		"-- header comment",
		"-- trailing on entity line",
		"-- generic trailer",
		"-- end trailer",
	} {
		assert.Contains(t, out, want)
		assert.Equal(t, 1, strings.Count(out, want), "comment %q must appear exactly once", want)
	}
}

func TestProperty_NoTrailingWhitespace(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.AlignSignals.Port = true
	cfg.LineLength = 10

	out := format(t, `entity E is port ( clk : in std_logic; data_valid : out std_logic ); end;`, cfg)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, line, strings.TrimRight(line, " \t"), "line has trailing whitespace: %q", line)
	}
}

func TestProperty_WidthBoundGroupsFlatWhenTheyFit(t *testing.T) {
	t.Parallel()

	out := format(t, `entity E is port ( clk : in std_logic ); end;`, config.Default())
	// doc.Bracket pads its flat rendering with a space on each side of the
	// parens (confirmed by layout_test.go's TestRender_GroupFitsFlat).
	assert.Contains(t, out, "port ( clk : in std_logic );")
}

func TestProperty_WidthBoundGroupsBreakWhenTooLong(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineLength = 15
	out := format(t, `entity E is port ( clk : in std_logic; rst : in std_logic ); end;`, cfg)
	assert.NotContains(t, out, "clk : in std_logic; rst : in std_logic")
}

func TestProperty_BreakQuantizationNeverExceedsSourceBlankLines(t *testing.T) {
	t.Parallel()

	src := "entity E is generic ( one : integer := 1;\n\n\n\ntwo : integer := 2 ); end E;"
	out := format(t, src, config.Default())
	// Four source newlines are a Break of three blank lines, which is four
	// newlines in a row in the output; five would be one blank line too many.
	assert.False(t, strings.Contains(out, "\n\n\n\n\n"), "must not emit more consecutive blank lines than the source's single Break")
}

func TestProperty_ParseReformatIdempotence(t *testing.T) {
	t.Parallel()

	src := `entity E is port ( clk : in std_logic; rst : in std_logic ); end E;`
	cfg := config.Default()

	once := format(t, src, cfg)
	file2 := parseOnly(t, once)
	twice := printer.Print(file2, cfg)

	assert.Equal(t, once, twice)
}

func TestProperty_AlignmentFixpoint(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.AlignSignals.Port = true
	cfg.LineLength = 1 // force every clause to break so each port is its own row

	out := format(t, `entity E is port ( clk : in std_logic; data_valid : out std_logic ); end;`, cfg)
	lines := strings.Split(out, "\n")

	var colonCols []int
	for _, l := range lines {
		if i := strings.Index(l, " :"); i >= 0 && (strings.Contains(l, "clk") || strings.Contains(l, "data_valid")) {
			colonCols = append(colonCols, i)
		}
	}
	require.Len(t, colonCols, 2)
	assert.Equal(t, colonCols[0], colonCols[1], "both ports' colons must share a column")
}
