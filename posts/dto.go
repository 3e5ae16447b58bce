package posts

// PostRequest is the payload for creating or updating a post. Both
// operations require the full title and content; partial updates are not
// supported.
type PostRequest struct {
	Title   string `json:"title" validate:"required,max=255" example:"Hello World"`
	Content string `json:"content" validate:"required" example:"First post."`
}
