package transport

import "strings"

type CommentForm struct {
	Author string `form:"author" validate:"required"`
	Text   string `form:"text"   validate:"required"`
}

func (f *CommentForm) Normalize() {
	f.Author = strings.TrimSpace(f.Author)
	f.Text = strings.TrimSpace(f.Text)
}

type OrderForm struct {
	Name    string `form:"name"    validate:"required"`
	Phone   string `form:"phone"   validate:"required"`
	Address string `form:"address" validate:"required"`
	Comment string `form:"comment"`
}

func (f *OrderForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.Comment = strings.TrimSpace(f.Comment)
}
