package types

// Platform identifies a social network a tenant publishes to.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
)

// Dimension is one axis of a content-strategy decision.
type Dimension string

const (
	DimensionTimeSlot       Dimension = "time_slot"
	DimensionContentType    Dimension = "content_type"
	DimensionHashtagPattern Dimension = "hashtag_pattern"
	DimensionToneStyle      Dimension = "tone_style"
)

// SafetyLevel controls how aggressively a tenant is allowed to post.
type SafetyLevel string

const (
	SafetyConservative SafetyLevel = "conservative"
	SafetyModerate     SafetyLevel = "moderate"
	SafetyAggressive   SafetyLevel = "aggressive"
)
