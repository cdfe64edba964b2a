package model

// Category groups projects, posts, and news items.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryCount pairs a category name with an entity count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
