package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "itrust-profile-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	p := &Profile{
		Name:      "work",
		Namespace: "com.example.work",
		Backend:   "http",
		HTTPURL:   "https://secrets.example.com/v1",
	}

	err = SaveProfile(tmpDir, p)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	path := GetProfilePath(tmpDir, "work")
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Fatalf("Profile file not created at %s", path)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := LoadProfile(tmpDir, "work")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if *loaded != *p {
		t.Errorf("Loaded profile mismatch: %+v vs %+v", loaded, p)
	}
}

func TestLoadProfileMissing(t *testing.T) {
	_, err := LoadProfile(t.TempDir(), "absent")
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestSaveProfileRejectsPathName(t *testing.T) {
	err := SaveProfile(t.TempDir(), &Profile{Name: "../escape", Backend: DefaultBackend})
	if err == nil {
		t.Fatal("Expected error for profile name with path separator")
	}
}

func TestLoadProfileRejectsPathName(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "outside.env"), []byte("KEYCHAIN_BACKEND=http\n"), 0600); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"../outside", `..\outside`, "..", ""} {
		p, err := LoadProfile(tmpDir, name)
		if err == nil {
			t.Errorf("Expected error for profile name %q, loaded %+v", name, p)
			continue
		}
		if os.IsNotExist(err) {
			t.Errorf("Profile name %q reached the filesystem: %v", name, err)
		}
	}
}

func TestToEnvSnippetOmitsEmpty(t *testing.T) {
	s := ToEnvSnippet(&Profile{Name: "min", Backend: DefaultBackend})
	if strings.Contains(s, "KEYCHAIN_HTTP_URL") || strings.Contains(s, "KEYCHAIN_NAMESPACE") {
		t.Errorf("Unexpected empty keys in snippet:\n%s", s)
	}
	if !strings.Contains(s, "KEYCHAIN_BACKEND=keyring\n") {
		t.Errorf("Missing backend in snippet:\n%s", s)
	}
}
