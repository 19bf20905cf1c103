package models

// UserQuery is the payload accepted by POST /api/openai/response.
type UserQuery struct {
	ID        *string `json:"id,omitempty"`
	UserQuery string  `json:"user_query"`
}
