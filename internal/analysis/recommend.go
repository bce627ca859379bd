package analysis

import "fmt"

const lowBucketMood = 6.0

// recommendations suggests preventive actions from the weakest weekday and
// hour, then from event categories that have lifted mood.
func recommendations(r CycleReport) []string {
	var out []string
	if t := r.Weekly.Trough; t != nil && t.AvgMood < lowBucketMood {
		out = append(out, fmt.Sprintf("Planifica algo agradable para los %s, suelen ser tus días más bajos.", t.Label))
	}
	if t := r.Daily.Trough; t != nil && t.AvgMood < lowBucketMood {
		out = append(out, fmt.Sprintf("Hacia las %s tu ánimo suele bajar; una pausa corta antes puede ayudar.", t.Label))
	}
	for _, f := range r.Causal {
		if len(out) >= MaxRecommendations {
			break
		}
		if f.Observed == EffectImproves && f.Typical == EffectImproves {
			out = append(out, fmt.Sprintf("Cuando mencionas %s tu ánimo suele mejorar después; vale la pena repetirlo.", f.Category))
		}
	}
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}
