package rundown

const (
	// drainingBits is set in the state word once a run down has started. The
	// whole top nibble is used so a stray increment can never carry into it
	// without first tripping the overflow check.
	drainingBits uint64 = 0xF000_0000_0000_0000

	// countMask isolates the active count in the low bits of the state word.
	countMask = ^drainingBits
)

// state is the decoded form of the word stored in a Ref. It packs the number
// of outstanding guards and the draining flag so both can be transitioned
// together with a single compare and swap.
type state struct {
	count    uint64
	draining bool
}

// decodeState splits a raw state word into its fields.
func decodeState(bits uint64) state {
	return state{
		count:    bits & countMask,
		draining: bits&drainingBits != 0,
	}
}

// encode is the inverse of decodeState.
func (s state) encode() uint64 {
	bits := s.count & countMask
	if s.draining {
		bits |= drainingBits
	}
	return bits
}

// withDraining returns the word for s with the draining flag set.
func (s state) withDraining() uint64 {
	s.draining = true
	return s.encode()
}

// withIncrement returns the word for s with one more active guard. It panics
// if the count field is saturated.
func (s state) withIncrement() uint64 {
	if s.count >= countMask {
		fatal(ErrOverflow, s)
	}
	s.count++
	return s.encode()
}

// withDecrement returns the word for s with one fewer active guard. It panics
// if there are no active guards, which means something released twice.
func (s state) withDecrement() uint64 {
	if s.count == 0 {
		fatal(ErrUnderflow, s)
	}
	s.count--
	return s.encode()
}
