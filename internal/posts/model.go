package posts

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CreatePostResponse struct {
	ID string `json:"id"`
}
