package stage

import "github.com/trendcast/trendcast-api/internal/domain"

// Per-platform casting defaults. YouTube and LinkedIn skew formal; TikTok
// and Instagram skew casual.
var platformAvatars = map[domain.Platform]string{
	domain.PlatformYouTube:   "anna_professional",
	domain.PlatformTikTok:    "sarah_energetic",
	domain.PlatformInstagram: "david_casual",
	domain.PlatformLinkedIn:  "mike_authoritative",
}

var platformVoices = map[domain.Platform]string{
	domain.PlatformYouTube:   "en-US-AriaNeural",
	domain.PlatformTikTok:    "en-US-JennyNeural",
	domain.PlatformInstagram: "en-US-AriaNeural",
	domain.PlatformLinkedIn:  "en-US-DavisNeural",
}

// AvatarFor returns the avatar to cast for a platform's videos.
func AvatarFor(platform domain.Platform) string {
	if avatar, ok := platformAvatars[platform]; ok {
		return avatar
	}
	return "anna_professional"
}

// VoiceFor returns the synthesis voice for a platform's videos.
func VoiceFor(platform domain.Platform) string {
	if voice, ok := platformVoices[platform]; ok {
		return voice
	}
	return "en-US-AriaNeural"
}
