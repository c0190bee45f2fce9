package validate

import (
	"errors"
	"testing"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

type sample struct {
	Name  string  `json:"name" validate:"required,notblank,max=5"`
	Thumb *string `json:"thumbnail" validate:"omitempty,url,imageurl"`
}

func TestIsImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://cdn.example.com/a.PNG", true},
		{"http://localhost:8080/uploads/1.jpg?v=2", true},
		{"https://x/y.ico", true},
		{"http://localhost:8080/uploads/document.pdf", false},
		{"https://x/noext", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsImageURL(tc.in); got != tc.want {
				t.Fatalf("IsImageURL(%q): want=%v got=%v", tc.in, tc.want, got)
			}
		})
	}
}

func TestStructUsesJSONNames(t *testing.T) {
	v := New()
	bad := "https://x/doc.pdf"
	err := v.Struct(sample{Name: "   ", Thumb: &bad})
	if err == nil {
		t.Fatalf("Struct: want error")
	}
	fields := v.Fields(err)
	if _, ok := fields["name"]; !ok {
		t.Fatalf("Fields: missing name in %v", fields)
	}
	if _, ok := fields["thumbnail"]; !ok {
		t.Fatalf("Fields: missing thumbnail in %v", fields)
	}

	good := "https://x/ok.webp"
	if err := v.Struct(sample{Name: "ok", Thumb: &good}); err != nil {
		t.Fatalf("Struct: %v", err)
	}
	if err := v.Struct(sample{Name: "ok"}); err != nil {
		t.Fatalf("Struct nil thumbnail: %v", err)
	}
}

func TestCheckReturnsFieldErrors(t *testing.T) {
	type input struct {
		Name string `json:"name" validate:"required,notblank"`
	}
	err := Default().Check(input{Name: "  "})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Check: want FieldErrors got=%v", err)
	}
	if _, ok := fe["name"]; !ok {
		t.Fatalf("Check: missing name field in %v", fe)
	}
	if !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("Check: want ErrInvalidArgument in chain")
	}
	if err := Default().Check(input{Name: "ok"}); err != nil {
		t.Fatalf("Check valid: %v", err)
	}
}
