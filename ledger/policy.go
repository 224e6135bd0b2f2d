package ledger

// Policy is a capability check guarding a privileged operation. Privileged
// roles (oracle, admin, host) are always injected as policies rather than
// read from ambient state, so components stay testable in isolation.
type Policy func(caller Address) bool

// Allow reports whether caller satisfies the policy. A nil policy denies
// everyone.
func (p Policy) Allow(caller Address) bool {
	return p != nil && p(caller)
}

// ExactAddress permits a single caller.
func ExactAddress(addr Address) Policy {
	return func(caller Address) bool { return caller == addr }
}

// AnyOf permits any of the given callers.
func AnyOf(addrs ...Address) Policy {
	set := make(map[Address]struct{}, len(addrs))
	for _, a := range addrs {
		set[a] = struct{}{}
	}
	return func(caller Address) bool {
		_, ok := set[caller]
		return ok
	}
}

// Nobody denies every caller.
func Nobody() Policy {
	return func(Address) bool { return false }
}
