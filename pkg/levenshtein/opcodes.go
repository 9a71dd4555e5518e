package levenshtein

// OpcodeKind identifies a contiguous span's relationship between s1 and
// s2. Unlike OpKind, it includes Equal: Opcodes cover every position of
// both sequences, not just where they diverge.
type OpcodeKind uint8

const (
	OpEqual OpcodeKind = iota
	OpReplace
	OpInsert
	OpDelete
)

func (k OpcodeKind) String() string {
	switch k {
	case OpEqual:
		return "equal"
	case OpReplace:
		return "replace"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Opcode is a maximal contiguous span of one relationship between
// s1[SrcBegin:SrcEnd] and s2[DestBegin:DestEnd].
type Opcode struct {
	Kind      OpcodeKind
	SrcBegin  int
	SrcEnd    int
	DestBegin int
	DestEnd   int
}

// Opcodes is an ordered, gap-free covering of both sequences: for any two
// consecutive entries, the first's End equals the second's Begin in both
// coordinates.
type Opcodes []Opcode

// ToOpcodes re-expresses an edit script as Opcodes, inserting the Equal
// spans implied by the gaps between (and around) consecutive editops and
// merging runs of same-kind, position-contiguous editops into one span.
func ToOpcodes(ops Editops, srcLen, destLen int) Opcodes {
	out := make(Opcodes, 0, len(ops)+1)
	srcCursor, destCursor := 0, 0

	for i := 0; i < len(ops); {
		op := ops[i]

		if op.SrcPos > srcCursor || op.DestPos > destCursor {
			out = append(out, Opcode{
				Kind:      OpEqual,
				SrcBegin:  srcCursor,
				SrcEnd:    op.SrcPos,
				DestBegin: destCursor,
				DestEnd:   op.DestPos,
			})
			srcCursor, destCursor = op.SrcPos, op.DestPos
		}

		srcStart, destStart := srcCursor, destCursor
		for i < len(ops) && ops[i].Kind == op.Kind && ops[i].SrcPos == srcCursor && ops[i].DestPos == destCursor {
			switch op.Kind {
			case Replace:
				srcCursor++
				destCursor++
			case Delete:
				srcCursor++
			case Insert:
				destCursor++
			}
			i++
		}

		out = append(out, Opcode{
			Kind:      opcodeKindOf(op.Kind),
			SrcBegin:  srcStart,
			SrcEnd:    srcCursor,
			DestBegin: destStart,
			DestEnd:   destCursor,
		})
	}

	if srcCursor < srcLen || destCursor < destLen {
		out = append(out, Opcode{
			Kind:      OpEqual,
			SrcBegin:  srcCursor,
			SrcEnd:    srcLen,
			DestBegin: destCursor,
			DestEnd:   destLen,
		})
	}

	return out
}

func opcodeKindOf(k OpKind) OpcodeKind {
	return OpcodeKind(k) + 1
}
