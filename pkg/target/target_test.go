package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"domain", "example.com", false},
		{"subdomain", "api.hackertarget.com", false},
		{"ipv4", "192.168.1.1", false},
		{"ipv6", "2001:db8::1", false},
		{"padded", "  example.com  ", false},
		{"empty", "", true},
		{"bare word", "localhost", true},
		{"garbage", "not a target", true},
		{"bad tld", "example.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReturnsValidationError(t *testing.T) {
	err := Validate("not a target")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "target", verr.Field)
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"https://example.com", "example.com"},
		{"https://example.com/path/here", "example.com"},
		{"example.com:8080", "example.com"},
		{"example.com/path", "example.com"},
		{"  example.com ", "example.com"},
		{"2001:db8::1", "2001:db8::1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestValidatePort(t *testing.T) {
	n, err := ValidatePort("443")
	require.NoError(t, err)
	assert.Equal(t, 443, n)

	_, err = ValidatePort("0")
	assert.Error(t, err)
	_, err = ValidatePort("65536")
	assert.Error(t, err)
	_, err = ValidatePort("http")
	assert.Error(t, err)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/path"))
	assert.NoError(t, ValidateURL("http://localhost:8080"))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("example.com"))
	assert.Error(t, ValidateURL(""))
}

func TestReadTargetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	content := "example.com\n\n# comment\n8.8.8.8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	targets, err := ReadTargetsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "8.8.8.8"}, targets)
}

func TestReadTargetsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n"), 0o644))

	_, err := ReadTargetsFile(path)
	assert.Error(t, err)
}

func TestReadTargetsFileMissing(t *testing.T) {
	_, err := ReadTargetsFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "scan_results.json", SanitizeFilename("scan_results.json"))
	assert.Equal(t, "a_b_c", SanitizeFilename(`a/b\c`))
	assert.Equal(t, "output", SanitizeFilename("..."))
	assert.Equal(t, "output", SanitizeFilename(""))
}
