package dto

// SearchPredictionRequest is the body of POST /predictions/search.
type SearchPredictionRequest struct {
	Symbol string `json:"symbol" form:"symbol" example:"AAPL"`
}

// TrackPredictionRequest is the body of POST /watchlist/track. Force replaces
// an existing tracking of the same symbol.
type TrackPredictionRequest struct {
	Symbol string `json:"symbol" form:"symbol" example:"AAPL"`
	Force  bool   `json:"force" form:"force" query:"force"`
}

// SidebarSymbolRequest is the body of POST /sidebar/symbols.
type SidebarSymbolRequest struct {
	Symbol string `json:"symbol" form:"symbol" example:"TSLA"`
}

// SidebarSymbolsResponse lists the sidebar tickers.
type SidebarSymbolsResponse struct {
	Symbols []string `json:"symbols"`
}

// CredentialsForm is the login and sign-up form.
type CredentialsForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

// SessionResponse describes the signed-in user of the current browser
// session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
}
