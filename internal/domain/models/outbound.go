package models

// AlertKind separates the alert streams sent to the owner.
type AlertKind string

const (
	AlertLowStock AlertKind = "low_stock"
	AlertDigest   AlertKind = "daily_digest"
)

// Alert is an outbound notification about the shop state.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}
