package versionator

import (
	"errors"
	"testing"

	"github.com/albertocavalcante/go-versionator/coord"
)

func TestParseGavs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "empty", args: nil, want: nil},
		{name: "single", args: []string{"com.x:core:1.0"}, want: []string{"com.x:core:1.0"}},
		{name: "order kept", args: []string{"b:b:2.0-SNAPSHOT", "a:a:1"}, want: []string{"b:b:2.0-SNAPSHOT", "a:a:1"}},
		{name: "missing version", args: []string{"com.x:core"}, wantErr: true},
		{name: "one bad argument", args: []string{"com.x:core:1.0", "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGavs(tt.args...)
			if tt.wantErr {
				var fe *coord.FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("ParseGavs(%q) error = %v, want *coord.FormatError", tt.args, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGavs(%q) error = %v", tt.args, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseGavs(%q) = %v, want %v", tt.args, got, tt.want)
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("ParseGavs(%q)[%d] = %s, want %s", tt.args, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseGroupArtifacts(t *testing.T) {
	got, err := ParseGroupArtifacts("com.x:core", "com.x:app")
	if err != nil {
		t.Fatalf("ParseGroupArtifacts() error = %v", err)
	}
	if got[0].String() != "com.x:core" || got[1].String() != "com.x:app" {
		t.Errorf("ParseGroupArtifacts() = %v", got)
	}

	if _, err := ParseGroupArtifacts("com.x:core:1.0"); err == nil {
		t.Error("ParseGroupArtifacts(gav) should fail")
	}
}

func TestSetVersions(t *testing.T) {
	parent := newPom("com.x:parent:1.0-SNAPSHOT")
	m := MustModel(parent, childOf("com.x:core", parent))

	result, err := SetVersions(m, []string{"com.x:core:1.1-SNAPSHOT"})
	if err != nil {
		t.Fatalf("SetVersions() error = %v", err)
	}
	assertModel(t, result, []string{
		"com.x:parent:1.1-SNAPSHOT",
		"com.x:core:1.1-SNAPSHOT parent=com.x:parent:1.1-SNAPSHOT",
	})

	if _, err := SetVersions(m, []string{"com.x:core"}); err == nil {
		t.Error("SetVersions() with a malformed gav should fail")
	}
	if _, err := SetVersions(m, []string{"com.x:core:1.1", "com.x:parent:1.2"}); !errors.Is(err, ErrContradiction) {
		t.Errorf("SetVersions() error = %v, want ErrContradiction", err)
	}
}

func TestReleaseHelper(t *testing.T) {
	m := MustModel(
		newPom("com.x:core:1.0-SNAPSHOT"),
		newPom("com.x:app:2.0-SNAPSHOT", withDeps("com.x:core:1.0-SNAPSHOT")),
	)

	result, err := Release(m, []string{"com.x:app"})
	if err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	assertModel(t, result, []string{
		"com.x:core:1.0",
		"com.x:app:2.0-SNAPSHOT dep=com.x:core:1.0",
	})

	if _, err := Release(m, []string{"app"}); err == nil {
		t.Error("Release() with a malformed exclusion should fail")
	}
}
