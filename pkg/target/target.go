// Package target validates and normalizes query targets (domains and IPs).
package target

import (
	"bufio"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError reports invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

var domainRe = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

var urlRe = regexp.MustCompile(`(?i)^https?://(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)$`)

// ValidateDomain checks that s looks like a domain name. A leading protocol
// or trailing port is stripped before checking.
func ValidateDomain(s string) error {
	if s == "" {
		return &ValidationError{Field: "domain", Message: "domain cannot be empty"}
	}
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			if u.Host != "" {
				s = u.Host
			} else {
				s = u.Path
			}
		}
	}
	s = strings.SplitN(s, ":", 2)[0]
	if !domainRe.MatchString(s) {
		return &ValidationError{Field: "domain", Message: fmt.Sprintf("invalid domain format: %s", s)}
	}
	return nil
}

// ValidateIP checks that s is a valid IPv4 or IPv6 address.
func ValidateIP(s string) error {
	if s == "" {
		return &ValidationError{Field: "ip", Message: "IP address cannot be empty"}
	}
	if _, err := netip.ParseAddr(s); err != nil {
		return &ValidationError{Field: "ip", Message: fmt.Sprintf("invalid IP address format: %s", s)}
	}
	return nil
}

// Validate accepts either a valid IP address or a valid domain.
func Validate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return &ValidationError{Field: "target", Message: "target cannot be empty"}
	}
	if ValidateIP(s) == nil {
		return nil
	}
	if ValidateDomain(s) == nil {
		return nil
	}
	return &ValidationError{
		Field:   "target",
		Message: fmt.Sprintf("%q is neither a valid domain nor IP address", s),
	}
}

// ValidateURL checks that s is a well-formed http(s) URL.
func ValidateURL(s string) error {
	if s == "" {
		return &ValidationError{Field: "url", Message: "URL cannot be empty"}
	}
	if !urlRe.MatchString(s) {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid URL format: %s", s)}
	}
	return nil
}

// ValidatePort parses s as a port number in [1, 65535].
func ValidatePort(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "port", Message: fmt.Sprintf("invalid port format: %s", s)}
	}
	if n < 1 || n > 65535 {
		return 0, &ValidationError{Field: "port", Message: fmt.Sprintf("port must be between 1 and 65535, got %d", n)}
	}
	return n, nil
}

// Clean normalizes a target by stripping protocol, port, and path. IPv6
// addresses keep their colons.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			if u.Host != "" {
				s = u.Host
			} else {
				s = u.Path
			}
		}
	}

	if strings.Count(s, ":") == 1 {
		s = strings.SplitN(s, ":", 2)[0]
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}

	return s
}

// ReadTargetsFile reads one target per line, skipping blanks and comments.
func ReadTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("cannot open %s: %v", path, err)}
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("error reading %s: %v", path, err)}
	}
	if len(targets) == 0 {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("no valid targets in %s", path)}
	}
	return targets, nil
}

var filenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename strips characters that are unsafe in filenames.
func SanitizeFilename(name string) string {
	name = filenameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		return "output"
	}
	return name
}
