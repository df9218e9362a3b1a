package normalize

import "github.com/hoanghai1803/newshub/internal/models"

const defaultBiasColor = "#666"

// Bias maps a bias service payload. Confidence may arrive as a number or as
// a percentage string such as "62.0%".
func Bias(raw []byte) (models.BiasResult, error) {
	o, err := decode(raw, "bias-check")
	if err != nil {
		return models.BiasResult{}, err
	}

	label := o.strOr("political_bias", "Unknown")
	return models.BiasResult{
		Label:       label,
		Lean:        ClassifyLean(label),
		Confidence:  o.numOr("confidence", 0),
		Color:       o.strOr("color_indicator", defaultBiasColor),
		Method:      o.strOr("method", "unknown"),
		Keywords:    o.stringList("keywords"),
		Explanation: o.strOr("explanation", ""),
	}, nil
}
