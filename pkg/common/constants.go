package common

const (
	// RedisKeyDigestSlot prefixes the per-user claim for one scheduling slot.
	RedisKeyDigestSlot = "digest:slot"

	// SessionCookieName carries the auth backend access token for browser callers.
	SessionCookieName = "sb-access-token"

	// ContextKeyUser is the echo context key holding the authenticated user.
	ContextKeyUser = "auth.user"

	MaxTickers         = 20
	RecentDigestsLimit = 5
)
