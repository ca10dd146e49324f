package domain

// MusicPlatform is the streaming platform a user prefers for shared links.
type MusicPlatform string

const (
	PlatformYouTube MusicPlatform = "yt"
	PlatformSpotify MusicPlatform = "sp"
)

func IsValidPlatform(p string) bool {
	switch MusicPlatform(p) {
	case PlatformYouTube, PlatformSpotify:
		return true
	}
	return false
}

// User is a credential record. Email is the primary key and is stored
// exactly as received (case-sensitive).
type User struct {
	Email         string
	PasswordHash  string
	Verified      bool
	MusicPlatform MusicPlatform
	FirstName     string
	LastName      string
}
