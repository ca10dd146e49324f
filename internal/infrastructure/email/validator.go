package email

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MXResolver is the DNS surface the deliverability check needs.
// *net.Resolver satisfies it; tests inject a fake.
type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Validator checks addresses syntactically and, at registration time,
// verifies that the domain publishes at least one mail exchanger.
type Validator struct {
	validate *validator.Validate
	resolver MXResolver
	timeout  time.Duration
}

func NewValidator(resolver MXResolver, timeout time.Duration) *Validator {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Validator{
		validate: validator.New(),
		resolver: resolver,
		timeout:  timeout,
	}
}

// WellFormed reports whether addr has the shape of an email address.
func (v *Validator) WellFormed(addr string) bool {
	return v.validate.Var(addr, "required,email") == nil
}

// DeliverableDomain reports whether the domain after @ resolves to at
// least one MX record. Any resolution failure, malformed address or
// empty answer counts as "not deliverable"; no error surfaces to the
// caller.
func (v *Validator) DeliverableDomain(ctx context.Context, addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return false
	}
	domain := addr[at+1:]

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	mxs, err := v.resolver.LookupMX(ctx, domain)
	if err != nil {
		return false
	}
	return len(mxs) > 0
}
