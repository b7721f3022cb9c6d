package runner

import "strings"

// Invocation is an executable name and its ordered arguments.
// The zero value is not usable; construct one with NewInvocation.
type Invocation struct {
	name string
	args []string
}

// NewInvocation returns an Invocation of name with a private copy of args.
func NewInvocation(name string, args ...string) Invocation {
	return Invocation{name: name, args: append([]string(nil), args...)}
}

// Name returns the executable name, resolved through PATH at run time.
func (i Invocation) Name() string { return i.name }

// Args returns a copy of the argument list.
func (i Invocation) Args() []string { return append([]string(nil), i.args...) }

func (i Invocation) String() string {
	if len(i.args) == 0 {
		return i.name
	}
	return i.name + " " + strings.Join(i.args, " ")
}
