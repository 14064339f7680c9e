package model

type Post struct {
	ID          *int64 `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Description string `json:"description"`
	AuthorEmail string `json:"user_email"`
}

func (p Post) HasID() bool {
	return p.ID != nil
}

// IDValue returns the assigned id, or -1 when the post has none yet.
func (p Post) IDValue() int64 {
	if p.ID == nil {
		return -1
	}
	return *p.ID
}

// WithID returns a copy of p carrying id. The receiver is left untouched.
func (p Post) WithID(id int64) Post {
	p.ID = &id
	return p
}

func ID(id int64) *int64 {
	return &id
}
