package model

// Product is one catalog entry, used to group transactions by product
// identity when a transaction carries a matching product reference.
type Product struct {
	ID          string
	Name        string
	Category    string
	Stream      string
	Enabled     bool
	ThumbnailID string // external thumbnail reference, optional
}
