package utils

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// SanitizeDeviceName sanitizes a device name by removing special characters and converting spaces to hyphens.
func SanitizeDeviceName(name string) string {
	// Trim whitespace.
	name = strings.TrimSpace(name)

	// Convert to lowercase.
	name = strings.ToLower(name)

	// Replace spaces with hyphens.
	name = strings.ReplaceAll(name, " ", "-")

	// Remove any characters that are not alphanumeric, hyphens, or underscores.
	re := regexp.MustCompile(`[^a-z0-9\-_]`)
	name = re.ReplaceAllString(name, "")

	// Remove consecutive hyphens.
	re = regexp.MustCompile(`-+`)
	name = re.ReplaceAllString(name, "-")

	// Trim leading and trailing hyphens.
	name = strings.Trim(name, "-")

	// If empty after sanitization, use a default.
	if name == "" {
		name = "device"
	}

	return name
}

// GenerateDeviceName derives a device name for this machine from the
// hostname, falling back to the username when the hostname is unavailable.
// The result identifies the device in backup commit messages.
func GenerateDeviceName() string {
	hostname, err := GetHostname()
	if err != nil {
		username, userErr := GetUsername()
		if userErr != nil {
			return "device"
		}
		hostname = username
	}
	return SanitizeDeviceName(hostname)
}

// IsValidDeviceName checks if a device name is valid (alphanumeric, hyphens, underscores).
func IsValidDeviceName(name string) bool {
	if name == "" {
		return false
	}
	validPattern := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)
	return validPattern.MatchString(name)
}
