package ir

import (
	"testing"

	"ucc/internal/parser"
	"ucc/internal/sema"
)

func buildSource(t *testing.T, source string) *Program {
	t.Helper()
	prog, err := parser.ParseSource(source)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if err := sema.Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	irProg, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return irProg
}

func findFunc(t *testing.T, prog *Program, name string) *Function {
	t.Helper()
	for _, fn := range prog.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %q", name)
	return nil
}

// A function whose body ends in a return must not grow the orphan
// "unreachable" block the builder used to manufacture on every exit:
// every block fn.Blocks lists, apart from the entry, needs at least
// one predecessor, and %exit needs exactly one.
func TestBuildFunctionEndingInReturnHasNoOrphanBlock(t *testing.T) {
	prog := buildSource(t, `int main() {
    int x;
    x = 1;
    return x;
}
`)
	fn := findFunc(t, prog, "main")

	for _, blk := range fn.Blocks {
		if blk.Label() == "unreachable" {
			t.Fatalf("found orphan unreachable block in %s", fn.Name)
		}
	}

	var exitPreds int
	for _, blk := range fn.Blocks {
		if blk == fn.Exit {
			exitPreds = len(blk.Preds())
		}
	}
	if exitPreds != 1 {
		t.Errorf("%%exit should have exactly 1 predecessor, got %d", exitPreds)
	}

	for _, blk := range fn.Blocks {
		if blk == fn.Entry {
			continue
		}
		if len(blk.Preds()) == 0 {
			t.Errorf("block %s has no predecessors", blk.Label())
		}
	}
}

// A return nested inside an if-branch must terminate that block
// without buildIf appending a second jump to the join point.
func TestBuildIfBranchEndingInReturnDoesNotDoubleJump(t *testing.T) {
	prog := buildSource(t, `int main() {
    int x;
    x = 1;
    if (x == 1) {
        return 1;
    }
    return 0;
}
`)
	fn := findFunc(t, prog, "main")

	for _, blk := range fn.Blocks {
		instrs := blk.Instructions()
		if len(instrs) == 0 {
			continue
		}
		jumps := 0
		for _, instr := range instrs {
			switch instr.(type) {
			case *Jump, *CBranch:
				jumps++
			}
		}
		if jumps > 1 {
			t.Errorf("block %s has %d terminators, want at most 1", blk.Label(), jumps)
		}
		// a terminator must be the last instruction in the block
		for i, instr := range instrs {
			switch instr.(type) {
			case *Jump, *CBranch:
				if i != len(instrs)-1 {
					t.Errorf("block %s: terminator at %d is not the last instruction", blk.Label(), i)
				}
			}
		}
	}
}

// A while loop whose body always breaks must not emit a dead jump
// back to the condition block after the break's jump out of the loop.
func TestBuildWhileBodyEndingInBreakDoesNotDoubleJump(t *testing.T) {
	prog := buildSource(t, `int main() {
    int x;
    x = 0;
    while (x < 10) {
        break;
    }
    return x;
}
`)
	fn := findFunc(t, prog, "main")

	for _, blk := range fn.Blocks {
		instrs := blk.Instructions()
		for i, instr := range instrs {
			switch instr.(type) {
			case *Jump, *CBranch:
				if i != len(instrs)-1 {
					t.Errorf("block %s: terminator at %d is not the last instruction", blk.Label(), i)
				}
			}
		}
	}
}

// Every block reachable from entry (apart from entry itself) must
// have at least one predecessor: the CFG-integrity invariant the
// review's constant-propagation and builder fixes both depend on.
func TestBuildEveryNonEntryBlockHasAPredecessor(t *testing.T) {
	prog := buildSource(t, `int fact(int n) {
    int r;
    r = 1;
    while (n > 1) {
        r = r * n;
        n = n - 1;
    }
    return r;
}
int main() {
    int i;
    i = 0;
    for (i = 0; i < 5; i = i + 1) {
        if (i == 3) {
            return i;
        }
    }
    return -1;
}
`)
	for _, fn := range prog.Functions {
		for _, blk := range fn.Blocks {
			if blk == fn.Entry {
				continue
			}
			if len(blk.Preds()) == 0 {
				t.Errorf("%s: block %s has no predecessors", fn.Name, blk.Label())
			}
		}
	}
}
