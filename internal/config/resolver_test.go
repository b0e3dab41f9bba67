package config

import (
	"reflect"
	"testing"
)

func TestResolve_ShellEnvBeatsGlobal(t *testing.T) {
	got := Resolve(VarBaseURL, map[Layer]string{
		LayerShellEnv: "X",
		LayerGlobal:   "Y",
	})

	if got.Value != "X" {
		t.Fatalf("Resolve() value = %q, want %q", got.Value, "X")
	}
	if got.WinningLayer != LayerShellEnv {
		t.Fatalf("Resolve() winning layer = %q, want %q", got.WinningLayer, LayerShellEnv)
	}
	if !got.Conflicting {
		t.Fatal("Resolve() conflicting = false, want true")
	}
	if want := []Layer{LayerShellEnv, LayerGlobal}; !reflect.DeepEqual(got.PresentIn, want) {
		t.Fatalf("Resolve() present-in = %v, want %v", got.PresentIn, want)
	}
}

func TestResolve_PrecedenceOrderAcrossAllPairs(t *testing.T) {
	for i, higher := range Precedence {
		for _, lower := range Precedence[i+1:] {
			got := Resolve(VarAuthToken, map[Layer]string{
				higher: "hi",
				lower:  "lo",
			})
			if got.WinningLayer != higher {
				t.Fatalf("Resolve(%s vs %s) winning layer = %q, want %q", higher, lower, got.WinningLayer, higher)
			}
			if got.Value != "hi" {
				t.Fatalf("Resolve(%s vs %s) value = %q, want %q", higher, lower, got.Value, "hi")
			}
			if !got.Conflicting {
				t.Fatalf("Resolve(%s vs %s) conflicting = false, want true", higher, lower)
			}
		}
	}
}

func TestResolve_EqualValuesStillConflict(t *testing.T) {
	got := Resolve(VarModel, map[Layer]string{
		LayerProjectLocal:  "claude-sonnet",
		LayerProjectShared: "claude-sonnet",
	})

	if !got.Conflicting {
		t.Fatal("Resolve() conflicting = false for equal values across layers, want true")
	}
	if got.WinningLayer != LayerProjectLocal {
		t.Fatalf("Resolve() winning layer = %q, want %q", got.WinningLayer, LayerProjectLocal)
	}
}

func TestResolve_NoPresentLayers(t *testing.T) {
	got := Resolve(VarBaseURL, nil)

	if got.Present() {
		t.Fatalf("Resolve() present = true, want absent: %#v", got)
	}
	if got.Conflicting || got.WinningLayer != "" || got.Value != "" {
		t.Fatalf("Resolve() absent result not zero: %#v", got)
	}
}

func TestResolve_SingleLayerIsNotConflicting(t *testing.T) {
	got := Resolve(VarBaseURL, map[Layer]string{LayerEnterprise: "https://gw.internal"})

	if got.Conflicting {
		t.Fatal("Resolve() conflicting = true for a single layer, want false")
	}
	if got.WinningLayer != LayerEnterprise {
		t.Fatalf("Resolve() winning layer = %q, want %q", got.WinningLayer, LayerEnterprise)
	}
}

func TestResolve_EmptyValueCountsAsPresent(t *testing.T) {
	got := Resolve(VarCustomHeaders, map[Layer]string{LayerGlobal: ""})

	if !got.Present() {
		t.Fatal("Resolve() absent for a defined empty value, want present")
	}
	if got.Value != "" {
		t.Fatalf("Resolve() value = %q, want empty", got.Value)
	}
}

func TestResolve_UnrecognizedNameIsIgnored(t *testing.T) {
	got := Resolve("NOT_A_GATEWAY_VARIABLE", map[Layer]string{LayerShellEnv: "x"})

	if got.Present() {
		t.Fatalf("Resolve() resolved an unrecognized name: %#v", got)
	}
}

func TestResolveAll_CoversCatalogue(t *testing.T) {
	reader := NewReader(Locations{}, map[string]string{
		string(VarBaseURL): "https://api.portkey.ai",
	}, nil)

	resolved := ResolveAll(reader)
	if len(resolved) != len(Catalogue()) {
		t.Fatalf("ResolveAll() returned %d results, want %d", len(resolved), len(Catalogue()))
	}
	for _, v := range resolved {
		if v.Name == VarBaseURL {
			if v.WinningLayer != LayerShellEnv || v.Value != "https://api.portkey.ai" {
				t.Fatalf("ResolveAll() base URL = %#v, want shell-env winner", v)
			}
			return
		}
	}
	t.Fatal("ResolveAll() missing base URL entry")
}
