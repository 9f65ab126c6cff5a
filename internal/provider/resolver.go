package provider

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Reachability classifies a contact lookup.
type Reachability int

const (
	// Deliverable means the provider can address the phone.
	Deliverable Reachability = iota
	// Unreachable means the provider says the phone has no account. It is a data
	// failure and will not change on retry.
	Unreachable
	// Unavailable means the lookup itself failed and may succeed later.
	Unavailable
)

func (r Reachability) String() string {
	switch r {
	case Deliverable:
		return "deliverable"
	case Unreachable:
		return "unreachable"
	default:
		return "unavailable"
	}
}

// Resolution is the outcome of resolving one phone.
type Resolution struct {
	Reachability Reachability
	// ContactRef is the provider's identity for the phone, when known.
	ContactRef string
	Err        error
}

// Deliverable reports whether the dispatcher may send to the phone.
func (r Resolution) Deliverable() bool {
	return r.Reachability == Deliverable
}

// ContactChecker asks the provider for a phone.
type ContactChecker interface {
	CheckContact(ctx context.Context, phone string) (*ContactStatus, error)
}

// Resolver caches definitive lookup answers in-process. Lookup failures are never cached.
type Resolver struct {
	checker ContactChecker
	cache   *gocache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

func NewResolver(checker ContactChecker, ttl time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		checker: checker,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
		logger:  logger,
	}
}

// Resolve never creates anything on the provider side; phones are addressed directly.
func (r *Resolver) Resolve(ctx context.Context, phone string) Resolution {
	if cached, ok := r.cache.Get(phone); ok {
		return cached.(Resolution)
	}

	status, err := r.checker.CheckContact(ctx, phone)
	if err != nil {
		r.logger.Warn("Contact lookup failed", zap.String("phone", phone), zap.Error(err))
		return Resolution{Reachability: Unavailable, Err: err}
	}

	res := Resolution{Reachability: Deliverable, ContactRef: status.WaID}
	if !status.Valid {
		res = Resolution{Reachability: Unreachable}
	}
	if r.ttl > 0 {
		r.cache.Set(phone, res, r.ttl)
	}
	return res
}

// Forget drops a cached answer, e.g. after a lead's phone is corrected.
func (r *Resolver) Forget(phone string) {
	r.cache.Delete(phone)
}
