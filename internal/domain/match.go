package domain

// MatchProfile is a profile from the discovery catalog. Entries are
// read-only; the catalog is seeded at startup.
type MatchProfile struct {
	ID              string   `json:"id" db:"id"`
	Nickname        string   `json:"nickname" db:"nickname"`
	PhotoURL        string   `json:"photo_url" db:"photo_url"`
	PhotoURLs       []string `json:"photo_urls" db:"photo_urls"`
	Gender          Gender   `json:"gender" db:"gender"`
	Age             string   `json:"age" db:"age"`
	Language        string   `json:"language" db:"language"`
	Interests       []string `json:"interests" db:"interests"`
	Bio             string   `json:"bio" db:"bio"`
	Distance        string   `json:"distance" db:"distance"`
	ActiveChatCount int      `json:"active_chat_count" db:"active_chat_count"`
}
