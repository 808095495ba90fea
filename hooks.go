package fetchcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// An entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "gen_mismatch", "epoch_mismatch", "expired", "value_decode"}
	SelfHeal(storageKey, reason string)

	// A caller joined an already in-flight fetch instead of starting its own.
	FetchShared(storageKey string)

	// A fetched result was discarded because an Invalidate or Clear raced the fetch.
	StoreSkipped(storageKey string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// GenStore errors (snapshot or bump).
	GenSnapshotError(storageKey string, err error)
	GenBumpError(storageKey string, err error)

	// Both gen bump and delete failed during Invalidate (likely backend outage).
	InvalidateOutage(key string, bumpErr, delErr error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)               {}
func (NopHooks) FetchShared(string)                    {}
func (NopHooks) StoreSkipped(string)                   {}
func (NopHooks) ProviderSetRejected(string)            {}
func (NopHooks) GenSnapshotError(string, error)        {}
func (NopHooks) GenBumpError(string, error)            {}
func (NopHooks) InvalidateOutage(string, error, error) {}
