package mem

// ErrCode identifies a raw storage failure.
type ErrCode int

const (
	// ErrOutOfMemory means the allocator refused the request.
	ErrOutOfMemory ErrCode = 13
	// ErrOverflow means the requested slot count cannot be expressed in bytes.
	ErrOverflow ErrCode = 1001
)

func (code ErrCode) Error() string {
	return ErrString(code)
}

// ErrString returns a human-readable message for an error code.
func ErrString(code ErrCode) string {
	switch code {
	case ErrOutOfMemory:
		return "Cannot allocate memory"
	case ErrOverflow:
		return "Overflow"
	default:
		return "Unknown error"
	}
}
