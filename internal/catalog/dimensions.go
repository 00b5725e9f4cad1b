package catalog

import (
	"strconv"

	"github.com/yungbote/strategist-backend/internal/types"
)

// Fixed arm catalogues per dimension. These are product-level constants, not
// tenant data; callers restrict to an allowed subset at request time.

var ContentTypes = []string{
	"educational",
	"promotional",
	"engagement",
	"news",
	"curated",
	"storytelling",
	"ugc",
}

var HashtagPatterns = []string{
	"niche_specific",
	"broad_popular",
	"branded",
	"trending",
	"mixed",
	"minimal",
	"community",
}

var ToneStyles = []string{
	"professional",
	"casual",
	"humorous",
	"inspirational",
	"educational",
	"conversational",
}

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	slots := make([]string, 24)
	for h := 0; h < 24; h++ {
		slots[h] = strconv.Itoa(h)
	}
	return slots
}

// Arms returns the full catalogue for a dimension. Unknown dimensions return
// an empty slice; selection then degenerates to its deterministic fallback.
func Arms(d types.Dimension) []string {
	switch d {
	case types.DimensionTimeSlot:
		return timeSlots
	case types.DimensionContentType:
		return ContentTypes
	case types.DimensionHashtagPattern:
		return HashtagPatterns
	case types.DimensionToneStyle:
		return ToneStyles
	}
	return nil
}

// AllDimensions lists the decision axes in the order a recommendation fills them.
var AllDimensions = []types.Dimension{
	types.DimensionTimeSlot,
	types.DimensionContentType,
	types.DimensionHashtagPattern,
	types.DimensionToneStyle,
}

// ValidArm reports whether arm belongs to the dimension's catalogue.
func ValidArm(d types.Dimension, arm string) bool {
	for _, a := range Arms(d) {
		if a == arm {
			return true
		}
	}
	return false
}
