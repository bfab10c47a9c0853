package parsevhdl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/lexvhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/parsevhdl"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	stream := lexvhdl.Lex(src)
	file, errs := parsevhdl.Parse(stream)
	require.Empty(t, errs, "unexpected parse errors")
	return file
}

func TestParse_MinimalEntity(t *testing.T) {
	t.Parallel()

	file := parse(t, "entity Minimal is end Minimal;")
	require.Len(t, file.Units, 1)
	entity, ok := file.Units[0].Unit.(*ast.Entity)
	require.True(t, ok)
	assert.Equal(t, "Minimal", entity.Name)
	assert.Equal(t, "Minimal", entity.EndName)
}

func TestParse_PortClauseModesAndSubtype(t *testing.T) {
	t.Parallel()

	file := parse(t, `entity E is port ( clk : in std_logic; data_valid : out std_logic ); end;`)
	entity := file.Units[0].Unit.(*ast.Entity)
	require.NotNil(t, entity.Port)
	require.Len(t, entity.Port.Ports, 2)

	clk := entity.Port.Ports[0]
	assert.Equal(t, []string{"clk"}, clk.Names)
	assert.Equal(t, ast.ModeIn, clk.Mode)
	assert.Equal(t, "std_logic", clk.Subtype.TypeMark)

	dv := entity.Port.Ports[1]
	assert.Equal(t, []string{"data_valid"}, dv.Names)
	assert.Equal(t, ast.ModeOut, dv.Mode)
}

func TestParse_AggregateWithOthersIsNotParenExpr(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin vec <= (others => '0'); end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	require.Len(t, arch.Stmts, 1)

	assign, ok := arch.Stmts[0].(*ast.CondConcurrentAssign)
	require.True(t, ok)
	require.Len(t, assign.Arms, 1)
	require.Len(t, assign.Arms[0].Value.Elements, 1)

	agg, ok := assign.Arms[0].Value.Elements[0].Value.(*ast.AggregateExpr)
	require.True(t, ok, "(others => '0') must parse as an AggregateExpr, not a ParenExpr")
	require.Len(t, agg.Elements, 1)

	choice, ok := agg.Elements[0].Choice.(*ast.TokenExpr)
	require.True(t, ok)
	assert.Equal(t, "others", choice.Text)
}

func TestParse_PlainParenExprStaysParenExpr(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin y <= (a); end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	assign := arch.Stmts[0].(*ast.CondConcurrentAssign)
	_, ok := assign.Arms[0].Value.Elements[0].Value.(*ast.ParenExpr)
	assert.True(t, ok, "a lone parenthesized expression with no \"=>\" must stay a ParenExpr")
}

func TestParse_SignalAssignArrowNotConfusedWithRelational(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin y <= a when sel = '1' else b; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	assign := arch.Stmts[0].(*ast.CondConcurrentAssign)
	require.Len(t, assign.Arms, 2)

	target, ok := assign.Target.(*ast.TokenExpr)
	require.True(t, ok)
	assert.Equal(t, "y", target.Text)

	cond, ok := assign.Arms[0].Condition.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "=", cond.Op)
}

func TestParse_SequentialAssignDisambiguatesArrowVsColonEqual(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin process begin
  counter := 0;
  q <= d;
end process; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)
	require.Len(t, proc.Body, 2)

	_, ok := proc.Body[0].(*ast.SeqVariableAssign)
	assert.True(t, ok, "\":=\" must parse as a variable assignment")

	_, ok = proc.Body[1].(*ast.SeqSignalAssign)
	assert.True(t, ok, "\"<=\" must parse as a signal assignment")
}

func TestParse_ProcessSensitivityDeclsAndBody(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin
process(clk) variable counter : integer := 0; constant MAX : integer := 10; begin counter := 0; end process;
end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)

	require.Len(t, proc.Sensitivity, 1)
	sens, ok := proc.Sensitivity[0].(*ast.TokenExpr)
	require.True(t, ok)
	assert.Equal(t, "clk", sens.Text)

	require.Len(t, proc.Decls, 2)
	_, ok = proc.Decls[0].(*ast.VariableDecl)
	assert.True(t, ok)
	_, ok = proc.Decls[1].(*ast.ConstantDecl)
	assert.True(t, ok)

	require.Len(t, proc.Body, 1)
}

func TestParse_IfElsifElse(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin process begin
if a = '1' then
  q <= '1';
elsif b = '1' then
  q <= '0';
else
  q <= 'Z';
end if;
end process; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)
	ifStmt := proc.Body[0].(*ast.If)
	require.Len(t, ifStmt.Arms, 2)
	require.Len(t, ifStmt.Else, 1)
}

func TestParse_CaseWithChoiceList(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin process begin
case sel is
  when "00" | "01" => q <= '0';
  when others => q <= '1';
end case;
end process; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)
	caseStmt := proc.Body[0].(*ast.Case)
	require.Len(t, caseStmt.Arms, 2)
	assert.Len(t, caseStmt.Arms[0].Choices, 2)
	assert.Len(t, caseStmt.Arms[1].Choices, 1)
}

func TestParse_ForLoop(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin process begin
for i in 0 to 7 loop
  q(i) <= '0';
end loop;
end process; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)
	loop := proc.Body[0].(*ast.Loop)
	assert.Equal(t, ast.LoopFor, loop.Kind)
	assert.Equal(t, "i", loop.ForVar)
}

func TestParse_LoopWithRepeatedEndLabel(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin process begin
outer: for i in 0 to 7 loop
  q(i) <= '0';
end loop outer;
end process; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	proc := arch.Stmts[0].(*ast.Process)
	loop := proc.Body[0].(*ast.Loop)
	assert.Equal(t, "outer", loop.Label)
	assert.Equal(t, "outer", loop.EndLabel)
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin y <= a + b * c; end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	assign := arch.Stmts[0].(*ast.CondConcurrentAssign)
	top, ok := assign.Arms[0].Value.Elements[0].Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", top.Op, "multiplication must bind tighter than addition")

	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParse_SelectedConcurrentAssign(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is begin
with sel select q <= a when "00", b when others;
end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	sel, ok := arch.Stmts[0].(*ast.SelectedConcurrentAssign)
	require.True(t, ok)
	require.Len(t, sel.Arms, 2)
}

func TestParse_ComponentDeclaration(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is
component C is
  generic ( W : integer := 8 );
  port ( d : in std_logic );
end component C;
begin end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	comp, ok := arch.Decls[0].(*ast.ComponentDecl)
	require.True(t, ok)
	assert.Equal(t, "C", comp.Name)
	require.NotNil(t, comp.Generic)
	require.NotNil(t, comp.Port)
}

func TestParse_EnumTypeDeclaration(t *testing.T) {
	t.Parallel()

	file := parse(t, `architecture A of E is
type state_t is (IDLE, RUNNING, DONE);
begin end A;`)
	arch := file.Units[0].Unit.(*ast.Architecture)
	typeDecl, ok := arch.Decls[0].(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, ast.TypeEnum, typeDecl.Kind)
	require.Len(t, typeDecl.EnumLiterals, 3)
}
