package models

// Keys under which the core persists its blobs.
const (
	StorageKeyCart           = "shwikky-cart"
	StorageKeySelectedCity   = "shwikky-selected-city"
	StorageKeyRecentSearches = "shwikky-recent-searches"
)

// Analytics topics.
const (
	TopicCartEvents   = "cart_events"
	TopicSearchEvents = "search_events"
)
