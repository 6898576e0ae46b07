package whisper

import (
	"fmt"
	"strings"
)

// Tier names a speed/accuracy tradeoff point for the pretrained model.
type Tier string

const (
	TierTiny   Tier = "tiny"
	TierBase   Tier = "base"
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
)

// Tiers lists the supported model tiers from fastest to most accurate.
func Tiers() []Tier {
	return []Tier{TierTiny, TierBase, TierSmall, TierMedium, TierLarge}
}

// large-v3 is the current weight file published for the "large" tier.
var tierFiles = map[Tier]string{
	TierTiny:   "ggml-tiny.bin",
	TierBase:   "ggml-base.bin",
	TierSmall:  "ggml-small.bin",
	TierMedium: "ggml-medium.bin",
	TierLarge:  "ggml-large-v3.bin",
}

var tierSizes = map[Tier]string{
	TierTiny:   "~75 MB",
	TierBase:   "~142 MB",
	TierSmall:  "~466 MB",
	TierMedium: "~1.5 GB",
	TierLarge:  "~3.1 GB",
}

// ParseTier validates a model-size token from config or flags.
func ParseTier(value string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := tierFiles[tier]; !ok {
		return "", fmt.Errorf("unknown model tier %q (expected tiny, base, small, medium, or large)", value)
	}
	return tier, nil
}

// WeightFile returns the ggml weight filename for a tier.
func (t Tier) WeightFile() string {
	return tierFiles[t]
}

// ApproxSize returns a human-readable download size for a tier.
func (t Tier) ApproxSize() string {
	return tierSizes[t]
}
