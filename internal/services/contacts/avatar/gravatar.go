// Package avatar produces profile image URLs: a Gravatar default at signup
// and Cloudinary-hosted uploads afterwards.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// Gravatar returns the identicon-backed Gravatar URL for email.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?d=identicon"
}
