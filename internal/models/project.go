package models

// LocalProject is a community initiative (cleanup day, communal garden)
// scoped to its region.
type LocalProject struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	AuthorID    string `json:"author_id" db:"author_id"`
	AuthorName  string `json:"author_name" db:"author_name"`
	Region      string `json:"region" db:"region"`
	Date        string `json:"date" db:"date"` // free text, e.g. "Sábados, 09:00"
	Location    string `json:"location" db:"location"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`

	// Populated separately, not db columns
	Participants []string  `json:"participants" db:"-"`
	Comments     []Comment `json:"comments" db:"-"`
}

// CreateProjectRequest is the request body for POST /api/projects
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}
