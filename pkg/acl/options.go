package acl

import "log/slog"

// Option configures an ACL.
type Option func(*ACL)

// WithLogger sets the logger used for swallowed lookup failures and
// precondition violations. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *ACL) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMaxDepth caps the number of parent hops a permission check may follow.
// Zero or a negative value means no limit; cycles are detected either way.
func WithMaxDepth(depth int) Option {
	return func(a *ACL) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}
