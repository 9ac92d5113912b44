package models

type IngestResponse struct {
	DocumentName string `json:"document_name"`
	Link         string `json:"link"`
	Pages        int    `json:"pages"`
}

type DeleteDocumentResponse struct {
	DocumentName string `json:"document_name"`
	Deleted      int    `json:"deleted"`
}

type SearchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

type AskRequest struct {
	Query string `json:"query" validate:"required"`
}

type AskResponse struct {
	Query  string      `json:"query"`
	Answer string      `json:"answer"`
	Hits   []SearchHit `json:"hits"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type BookmarkRequest struct {
	Query  string `json:"query" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
