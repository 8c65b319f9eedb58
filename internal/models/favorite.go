package models

// FavoriteType is the kind of entity a favorite points to
type FavoriteType string

const (
	FavoriteList   FavoriteType = "list"
	FavoriteFolder FavoriteType = "folder"
)

// Favorite is a pinned shortcut stored locally per workspace
type Favorite struct {
	ID   ID           `json:"id"`
	Name string       `json:"name"`
	Type FavoriteType `json:"type"`
	URL  string       `json:"url"`
}

func (f *Favorite) GetID() string { return f.ID.String() }
