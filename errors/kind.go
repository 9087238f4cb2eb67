package errors

// Kind classifies failures of the crypto engine.
type Kind int

const (
	// KindUnknown is any error not produced through this package
	KindUnknown Kind = UnknownCode

	// KindPrecondition is an empty or missing required input, a key pair
	// lacking the needed component, or an uninitialized state
	KindPrecondition Kind = 400

	// KindRejected is a well-formed input that failed a cryptographic check,
	// such as a signature that does not verify
	KindRejected Kind = 401

	// KindDecode is a malformed point, signature or ciphertext encoding
	KindDecode Kind = 422

	// KindProvider is a primitive provider that could not perform an operation
	KindProvider Kind = 501

	// KindIncompatible is a primitive provider whose version or
	// capabilities cannot be used at all
	KindIncompatible Kind = 505

	// KindExhausted is secure memory that could not be obtained
	KindExhausted Kind = 507
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindRejected:
		return "rejected"
	case KindDecode:
		return "decode"
	case KindProvider:
		return "provider"
	case KindIncompatible:
		return "incompatible"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ge *Error
	if As(err, &ge) {
		switch k := Kind(ge.Code); k {
		case KindPrecondition, KindRejected, KindDecode, KindProvider, KindIncompatible, KindExhausted:
			return k
		}
	}
	return KindUnknown
}

func Precondition(format string, args ...any) *Error {
	return New(int(KindPrecondition), format, args...)
}

func Rejected(format string, args ...any) *Error {
	return New(int(KindRejected), format, args...)
}

func Decode(format string, args ...any) *Error {
	return New(int(KindDecode), format, args...)
}

func Provider(format string, args ...any) *Error {
	return New(int(KindProvider), format, args...)
}

func Incompatible(format string, args ...any) *Error {
	return New(int(KindIncompatible), format, args...)
}

func Exhausted(format string, args ...any) *Error {
	return New(int(KindExhausted), format, args...)
}
