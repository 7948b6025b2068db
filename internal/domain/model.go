package domain

// AIModel describes a chat model offered by the active backend.
type AIModel struct {
	ID   string
	Name string
	Size int64
}
