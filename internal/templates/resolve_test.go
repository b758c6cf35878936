package templates

import "testing"

func TestResolvePrecedence(t *testing.T) {
	defaults := Config{"hero_title": "Welcome", "accent": "blue", "show_banner": true}
	stored := Config{"hero_title": "Acme Threads", "accent": "green"}
	override := Config{"accent": "red"}

	resolved := Resolve(override, stored, defaults)

	if resolved["accent"] != "red" {
		t.Fatalf("expected override to win, got %v", resolved["accent"])
	}
	if resolved["hero_title"] != "Acme Threads" {
		t.Fatalf("expected stored to beat defaults, got %v", resolved["hero_title"])
	}
	if resolved["show_banner"] != true {
		t.Fatalf("expected absent keys to fall through to defaults, got %v", resolved["show_banner"])
	}
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	defaults := Config{"accent": "blue"}
	stored := Config{"accent": "green"}

	resolved := Resolve(nil, stored, defaults)
	resolved["accent"] = "purple"

	if defaults["accent"] != "blue" || stored["accent"] != "green" {
		t.Fatal("expected input layers to be untouched")
	}
}

func TestResolveEmptyLayers(t *testing.T) {
	resolved := Resolve(nil, nil, nil)
	if len(resolved) != 0 {
		t.Fatalf("expected empty config, got %v", resolved)
	}

	resolved = Resolve(nil, nil, Config{"accent": "blue"})
	if resolved["accent"] != "blue" {
		t.Fatalf("expected defaults alone to resolve, got %v", resolved)
	}
}
