package models

import "time"

// Post — запись в ленте сообщества.
type Post struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyPost — входные данные запроса публикации в ленте.
type DummyPost struct {
	Content string `json:"content" validate:"required,max=2000"`
}
