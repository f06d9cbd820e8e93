package validation_test

import (
	"testing"

	"github.com/gin-gonic/gin/binding"

	"blogapi/pkg/validation"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestToDetails_FieldMessages(t *testing.T) {
	validation.Init()

	err := binding.Validator.ValidateStruct(&sample{Email: "not-an-email", Password: "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	details := validation.ToDetails(err)
	if details["email"] != "must be a valid email" {
		t.Fatalf("email detail: %q", details["email"])
	}
	if details["password"] == "" {
		t.Fatalf("expected password detail, got %v", details)
	}
}

func TestToDetails_UsesJSONTagNames(t *testing.T) {
	validation.Init()

	err := binding.Validator.ValidateStruct(&sample{})
	details := validation.ToDetails(err)
	if _, ok := details["email"]; !ok {
		t.Fatalf("expected json tag name keys, got %v", details)
	}
	if _, ok := details["Email"]; ok {
		t.Fatalf("struct field names must not leak, got %v", details)
	}
}

func TestToDetails_NilError(t *testing.T) {
	if d := validation.ToDetails(nil); d != nil {
		t.Fatalf("expected nil, got %v", d)
	}
}
