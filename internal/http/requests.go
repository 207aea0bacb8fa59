package http

// Request bodies. Pointer fields distinguish "absent" from "empty".

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"ISBN"`
	PublishYear int    `json:"publishYear"`
	Genre       string `json:"genre"`
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	PublishYear *int    `json:"publishYear"`
	Genre       *string `json:"genre"`
}

type borrowRequest struct {
	UserID string `json:"userId"`
	BookID string `json:"bookId"`
}
