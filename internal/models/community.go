package models

// Community post types.
const (
	PostAlert   = "Alert"
	PostProject = "Project"
	PostTip     = "Tip"
)

// CommunityPost is a feed entry scoped to its author's region.
type CommunityPost struct {
	ID        string `json:"id" db:"id"`
	AuthorID  string `json:"author_id" db:"author_id"`
	Author    string `json:"author" db:"author"`
	Content   string `json:"content" db:"content"`
	Likes     int    `json:"likes" db:"likes"`
	Type      string `json:"type" db:"type"` // Alert, Project or Tip
	Region    string `json:"region" db:"region"`
	ImageURL  string `json:"image_url" db:"image_url"`
	CreatedAt int64  `json:"created_at" db:"created_at"`

	// Populated separately, not db columns
	LikedBy  []string  `json:"liked_by" db:"-"`
	Comments []Comment `json:"comments" db:"-"`
}

// Comment belongs to a post or project.
type Comment struct {
	ID        string `json:"id" db:"id"`
	Author    string `json:"author" db:"author"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// CreatePostRequest is the request body for POST /api/posts
type CreatePostRequest struct {
	Content  string `json:"content"`
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
}

// AddCommentRequest is the request body for adding a comment.
type AddCommentRequest struct {
	Content string `json:"content"`
}
