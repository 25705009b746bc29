package layernav

// SearchIntent is the decoded form of the integer search mode:
// mode <= 0 enumerates every indexed surface, mode > 0 only the local
// neighbourhood; an odd mode relaxes the containment check.
type SearchIntent uint8

const (
	ExhaustiveStrict SearchIntent = iota
	ExhaustiveRelaxed
	LocalStrict
	LocalRelaxed
)

func IntentFromMode(mode int) SearchIntent {
	relaxed := mode%2 != 0
	switch {
	case mode > 0 && relaxed:
		return LocalRelaxed
	case mode > 0:
		return LocalStrict
	case relaxed:
		return ExhaustiveRelaxed
	default:
		return ExhaustiveStrict
	}
}

func (si SearchIntent) Local() bool   { return si == LocalStrict || si == LocalRelaxed }
func (si SearchIntent) Relaxed() bool { return si == ExhaustiveRelaxed || si == LocalRelaxed }

// Mode returns the canonical integer search mode of the intent.
func (si SearchIntent) Mode() int {
	switch si {
	case ExhaustiveRelaxed:
		return -1
	case LocalStrict:
		return 2
	case LocalRelaxed:
		return 1
	default:
		return 0
	}
}

func (si SearchIntent) String() string {
	switch si {
	case ExhaustiveRelaxed:
		return "exhaustive-relaxed"
	case LocalStrict:
		return "local-strict"
	case LocalRelaxed:
		return "local-relaxed"
	default:
		return "exhaustive-strict"
	}
}
