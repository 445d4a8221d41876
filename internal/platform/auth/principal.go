package auth

import (
	"context"
	"sync"
)

type contextKey string

const principalKey contextKey = "staff_principal"

// Identity is the resolved caller: a staff member and their permission level.
type Identity struct {
	StaffID     string
	Name        string
	JobTypeCode string
	Level       int
}

// Resolver maps a staff identifier to an Identity. A nil Identity with a nil
// error means the identifier is unknown.
type Resolver interface {
	Resolve(ctx context.Context, staffID string) (*Identity, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, staffID string) (*Identity, error)

func (f ResolverFunc) Resolve(ctx context.Context, staffID string) (*Identity, error) {
	return f(ctx, staffID)
}

// Principal carries the staff identifier supplied with a request. The
// identifier is resolved at most once, on the first level check, so requests
// that never touch a restricted field cost no lookup.
type Principal struct {
	staffID  string
	resolver Resolver
	disabled bool

	once     sync.Once
	identity *Identity
	err      error
}

// NewPrincipal builds a principal for staffID. When disabled is set every
// level check passes without a lookup.
func NewPrincipal(staffID string, resolver Resolver, disabled bool) *Principal {
	return &Principal{staffID: staffID, resolver: resolver, disabled: disabled}
}

func (p *Principal) StaffID() string { return p.staffID }

// Identity resolves the principal. The result, including a failed lookup, is
// memoized for the lifetime of the request.
func (p *Principal) Identity(ctx context.Context) (*Identity, error) {
	p.once.Do(func() {
		if p.staffID == "" || p.resolver == nil {
			return
		}
		p.identity, p.err = p.resolver.Resolve(ctx, p.staffID)
	})
	return p.identity, p.err
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the request principal, or nil when none was attached.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
