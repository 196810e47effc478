package common

const (
	// SessionCookieName carries the opaque dashboard session id.
	SessionCookieName = "forecast_session"

	// ContextKeySessionID is the echo context key holding the resolved session id.
	ContextKeySessionID = "session_id"
	// ContextKeyProvider is the echo context key holding the *session.Provider.
	ContextKeyProvider = "session_provider"

	// AnonOwnerPrefix keys per-visitor data of signed-out browser sessions.
	AnonOwnerPrefix = "anon:"

	// RedisKeySidebarSymbols stores the sidebar ticker list per user.
	RedisKeySidebarSymbols = "dashboard:sidebar:symbols:%s"

	// CacheKeyMarketMovers stores the shared movers snapshot.
	CacheKeyMarketMovers = "market:movers"

	// MarketNewsKey is the pseudo-symbol for the general market news feed.
	MarketNewsKey = "MARKET"

	// ForecastDays is the horizon requested from the prediction backend.
	ForecastDays = 7
)

// DefaultSidebarSymbols seeds the sidebar watchlist for new users.
var DefaultSidebarSymbols = []string{"NVDA", "SPY", "QQQ", "AMD"}
