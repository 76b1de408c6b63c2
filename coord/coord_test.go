package coord

import (
	"errors"
	"slices"
	"testing"

	"github.com/albertocavalcante/go-versionator/version"
)

func TestNewIdentifiers(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"com.example", "com.example", false},
		{"  com.example\n", "com.example", false},
		{"", "", true},
		{" \t ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := NewGroupID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGroupID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if g.String() != tt.want {
				t.Errorf("NewGroupID(%q) = %q, want %q", tt.input, g, tt.want)
			}
			a, err := NewArtifactID(tt.input)
			if (err != nil) != tt.wantErr || a.String() != tt.want {
				t.Errorf("NewArtifactID(%q) = (%q, %v)", tt.input, a, err)
			}
			k, err := NewKey(tt.input)
			if (err != nil) != tt.wantErr || k.String() != tt.want {
				t.Errorf("NewKey(%q) = (%q, %v)", tt.input, k, err)
			}
		})
	}
}

func TestParseGroupArtifact(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"com.x:core", "com.x:core", false},
		{" com.x : core ", "com.x:core", false},
		{"com.x", "", true},
		{"com.x:core:1.0", "", true},
		{":core", "", true},
		{"com.x:", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ga, err := ParseGroupArtifact(tt.input)
			if tt.wantErr {
				var fe *FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("ParseGroupArtifact(%q) error = %v, want *FormatError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGroupArtifact(%q) unexpected error: %v", tt.input, err)
			}
			if ga.String() != tt.want {
				t.Errorf("ParseGroupArtifact(%q) = %q, want %q", tt.input, ga, tt.want)
			}
		})
	}
}

func TestParseGav(t *testing.T) {
	tests := []struct {
		input       string
		wantGA      string
		wantVersion string
		wantErr     bool
	}{
		{"com.x:core:1.0", "com.x:core", "1.0", false},
		{"com.x:core:1.0-SNAPSHOT", "com.x:core", "1.0-SNAPSHOT", false},
		{"com.x:core:1.2:extra", "com.x:core", "1.2:extra", false},
		{"com.x:core", "", "", true},
		{"com.x", "", "", true},
		{"com.x:core:", "", "", true},
		{"::1.0", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := ParseGav(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGav(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGav(%q) unexpected error: %v", tt.input, err)
			}
			if g.GroupArtifact.String() != tt.wantGA {
				t.Errorf("ParseGav(%q).GroupArtifact = %q, want %q", tt.input, g.GroupArtifact, tt.wantGA)
			}
			if g.Version.String() != tt.wantVersion {
				t.Errorf("ParseGav(%q).Version = %q, want %q", tt.input, g.Version, tt.wantVersion)
			}
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	_, err := ParseGav("com.x")
	want := "invalid format: expected '*:*:*' but found 'com.x'"
	if err == nil || err.Error() != want {
		t.Errorf("ParseGav(%q) error = %v, want %q", "com.x", err, want)
	}
}

func TestDependencyApply(t *testing.T) {
	dep := NewDependency(MustGav("com.x:b:2.0"))

	got, changed := dep.Apply(MustGav("com.x:b:2.1"))
	if !changed || got.Version().String() != "2.1" {
		t.Errorf("Apply(matching) = (%v, %v), want (com.x:b:2.1, true)", got, changed)
	}
	if dep.Version().String() != "2.0" {
		t.Errorf("Apply mutated the receiver: %v", dep)
	}

	got, changed = dep.Apply(MustGav("com.x:c:9.9"))
	if changed || got != dep {
		t.Errorf("Apply(other) = (%v, %v), want unchanged", got, changed)
	}

	got, changed = dep.Apply(MustGav("com.x:b:2.0"))
	if changed || got != dep {
		t.Errorf("Apply(same version) = (%v, %v), want unchanged", got, changed)
	}
}

func TestDependencyPropertyRef(t *testing.T) {
	dep := NewDependency(MustGav("com.x:b:${b.version}"))
	key, ok := dep.PropertyRef()
	if !ok || key.String() != "b.version" {
		t.Errorf("PropertyRef() = (%q, %v), want (b.version, true)", key, ok)
	}
	if _, ok := NewDependency(MustGav("com.x:b:1.0")).PropertyRef(); ok {
		t.Error("PropertyRef() on a literal version should be false")
	}
}

func TestPropertyApply(t *testing.T) {
	p, err := NewProperty("b.version", "1.0")
	if err != nil {
		t.Fatal(err)
	}
	q := p.Apply("2.0")
	if q.Value != "2.0" || p.Value != "1.0" || q.Key != p.Key {
		t.Errorf("Apply(2.0) = %v (receiver %v)", q, p)
	}
	if _, err := NewProperty(" ", "x"); err == nil {
		t.Error("NewProperty with blank key should fail")
	}
}

func TestSortGavs(t *testing.T) {
	gavs := []Gav{
		MustGav("com.y:a:1.0"),
		MustGav("com.x:b:2.0"),
		MustGav("com.x:a:1.0"),
		MustGav("com.x:b:1.0-SNAPSHOT"),
	}
	SortGavs(gavs)

	var got []string
	for _, g := range gavs {
		got = append(got, g.String())
	}
	want := []string{"com.x:a:1.0", "com.x:b:1.0-SNAPSHOT", "com.x:b:2.0", "com.y:a:1.0"}
	if !slices.Equal(got, want) {
		t.Errorf("SortGavs() = %v, want %v", got, want)
	}
}

func TestGavEquality(t *testing.T) {
	a := MustGav("com.x:a:1.0")
	b := NewGav(MustGroupArtifact("com.x:a"), version.NewCommon(1, 0, 0, false))
	if a != b {
		t.Errorf("%v != %v", a, b)
	}
	if a.WithVersion(version.MustParse("2.0")) == a {
		t.Error("WithVersion should produce a different Gav")
	}
	set := map[Gav]bool{a: true}
	if !set[b] {
		t.Error("structurally equal Gavs should share a map key")
	}
}
