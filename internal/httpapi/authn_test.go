package httpapi

import (
	"errors"
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", token: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", token: "abc"},
		{name: "empty", header: "", err: errMissingToken},
		{name: "wrong scheme", header: "Basic dXNlcg==", err: errBadScheme},
		{name: "scheme only", header: "Bearer ", err: errMissingToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := extractBearerToken(tc.header)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if token != tc.token {
				t.Fatalf("token = %q, want %q", token, tc.token)
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	if !isPublicPath("/v1/auth/login") {
		t.Fatal("login must be public")
	}
	if !isPublicPath("/healthz") {
		t.Fatal("healthz must be public")
	}
	if isPublicPath("/v1/assets") {
		t.Fatal("assets must not be public")
	}
	if isPublicPath("/v1/auth/login/extra") {
		t.Fatal("prefix match must not leak")
	}
}
