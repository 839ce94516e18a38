package proxy

import (
	"strings"
	"testing"
)

// --- Rewrite Tests ---

func TestRewrite(t *testing.T) {
	const origin = "https://shop.example.com"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "double quoted src",
			in:   `<img src="/img/a.png">`,
			want: `<img src="https://shop.example.com/img/a.png">`,
		},
		{
			name: "single quoted href",
			in:   `<a href='/cart'>`,
			want: `<a href='https://shop.example.com/cart'>`,
		},
		{
			name: "protocol relative untouched",
			in:   `<script src="//cdn.example.com/app.js"></script>`,
			want: `<script src="//cdn.example.com/app.js"></script>`,
		},
		{
			name: "absolute untouched",
			in:   `<link href="https://fonts.example.com/f.css">`,
			want: `<link href="https://fonts.example.com/f.css">`,
		},
		{
			name: "relative path untouched",
			in:   `<img src="img/a.png">`,
			want: `<img src="img/a.png">`,
		},
		{
			name: "css url bare",
			in:   `background: url(/bg.png)`,
			want: `background: url(https://shop.example.com/bg.png)`,
		},
		{
			name: "css url quoted",
			in:   `background: url("/bg.png")`,
			want: `background: url("https://shop.example.com/bg.png")`,
		},
		{
			name: "css url protocol relative",
			in:   `background: url(//cdn.example.com/bg.png)`,
			want: `background: url(//cdn.example.com/bg.png)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.in, origin); got != tt.want {
				t.Errorf("Rewrite() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewrite_TrailingSlashOrigin(t *testing.T) {
	got := Rewrite(`<a href="/x">`, "https://a.example/")
	if got != `<a href="https://a.example/x">` {
		t.Errorf("Rewrite() = %q", got)
	}
}

func TestOrigin(t *testing.T) {
	got, err := Origin("https://shop.example.com:8443/products/a?b=c")
	if err != nil {
		t.Fatalf("Origin() error = %v", err)
	}
	if got != "https://shop.example.com:8443" {
		t.Errorf("Origin() = %q", got)
	}

	if _, err := Origin("/just/a/path"); err == nil {
		t.Error("Origin() on relative URL error = nil")
	}
}

// --- InjectBridge Tests ---

func TestInjectBridge(t *testing.T) {
	tag := "<script>" + BridgeScript + "</script>"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"before head", "<html><head><title>x</title></head><body></body></html>",
			"<html><head><title>x</title>" + tag + "</head><body></body></html>"},
		{"uppercase head", "<HTML><HEAD></HEAD></HTML>", "<HTML><HEAD>" + tag + "</HEAD></HTML>"},
		{"before body", "<body><p>hi</p></body>", "<body><p>hi</p>" + tag + "</body>"},
		{"appended", "<p>fragment</p>", "<p>fragment</p>" + tag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InjectBridge(tt.in); got != tt.want {
				t.Errorf("InjectBridge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	out, err := Prepare(`<html><head><link href="/a.css"></head></html>`, "https://example.com/p")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(out, `href="https://example.com/a.css"`) {
		t.Errorf("Prepare() did not rewrite: %s", out)
	}
	if !strings.Contains(out, "__findTextPosition") {
		t.Error("Prepare() did not inject bridge")
	}
	if strings.Index(out, "__findTextPosition") > strings.Index(out, "</head>") {
		t.Error("bridge injected after </head>")
	}
}

func TestBridgeScript_Protocol(t *testing.T) {
	for _, want := range []string{"'find-text'", "'text-position'", "'proxy-ready'", "x: 50"} {
		if !strings.Contains(BridgeScript, want) {
			t.Errorf("BridgeScript missing %s", want)
		}
	}
}
