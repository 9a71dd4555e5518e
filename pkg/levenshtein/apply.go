package levenshtein

import "fmt"

// Apply replays an edit script against s1 and s2, producing the sequence
// the script claims s1 turns into. Insert and Replace steps pull their
// inserted/substituted code unit from s2 at DestPos, so the same Editops
// value is not portable across a different destination sequence.
//
// The returned error wraps InvalidEditops; it never panics on a malformed
// script.
func Apply[T Unit](ops Editops, s1, s2 []T) ([]T, error) {
	if err := validateEditops(ops, len(s1), len(s2)); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(s2))
	srcCursor, destCursor := 0, 0

	for _, op := range ops {
		gap := op.SrcPos - srcCursor
		out = append(out, s1[srcCursor:srcCursor+gap]...)
		destCursor += gap
		srcCursor = op.SrcPos

		switch op.Kind {
		case Replace:
			out = append(out, s2[op.DestPos])
			srcCursor = op.SrcPos + 1
			destCursor = op.DestPos + 1
		case Delete:
			srcCursor = op.SrcPos + 1
		case Insert:
			out = append(out, s2[op.DestPos])
			destCursor = op.DestPos + 1
		}
	}

	out = append(out, s1[srcCursor:]...)
	return out, nil
}

// validateEditops checks that ops is a well-formed script over sequences of
// length srcLen and destLen: positions in range, and non-decreasing in both
// coordinates so the equal-run gaps Apply copies are never negative.
func validateEditops(ops Editops, srcLen, destLen int) error {
	srcCursor, destCursor := 0, 0

	for _, op := range ops {
		if op.SrcPos < srcCursor || op.SrcPos > srcLen {
			return fmt.Errorf("%w: src position %d out of range [%d, %d]", InvalidEditops, op.SrcPos, srcCursor, srcLen)
		}
		if op.DestPos < destCursor || op.DestPos > destLen {
			return fmt.Errorf("%w: dest position %d out of range [%d, %d]", InvalidEditops, op.DestPos, destCursor, destLen)
		}
		if op.SrcPos-srcCursor != op.DestPos-destCursor {
			return fmt.Errorf("%w: equal-run length mismatches between src and dest before position %d", InvalidEditops, op.SrcPos)
		}

		switch op.Kind {
		case Replace:
			if op.SrcPos >= srcLen || op.DestPos >= destLen {
				return fmt.Errorf("%w: replace at end of input", InvalidEditops)
			}
			srcCursor, destCursor = op.SrcPos+1, op.DestPos+1
		case Delete:
			if op.SrcPos >= srcLen {
				return fmt.Errorf("%w: delete at end of source", InvalidEditops)
			}
			srcCursor, destCursor = op.SrcPos+1, op.DestPos
		case Insert:
			if op.DestPos >= destLen {
				return fmt.Errorf("%w: insert at end of destination", InvalidEditops)
			}
			srcCursor, destCursor = op.SrcPos, op.DestPos+1
		default:
			return fmt.Errorf("%w: unknown op kind %d", InvalidEditops, op.Kind)
		}
	}

	return nil
}
