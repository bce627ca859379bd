package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/app"
)

// FormatInsight renders the single insight selected for a conversation.
func FormatInsight(in *analysis.Insight) string {
	if in == nil {
		return Dim("Nothing worth mentioning yet.") + "\n"
	}
	return fmt.Sprintf("%s %s\n%s\n", StyleBlue.Render("●"), in.Text,
		Dim(fmt.Sprintf("%s · score %.2f · %d samples", in.Kind, in.Score, in.SampleCount)))
}

// FormatPromptSignal renders everything handed to the reply generator.
func FormatPromptSignal(s *app.PromptSignal) string {
	var b strings.Builder
	insight := Dim("none")
	if s.Insight != nil {
		insight = s.Text()
	}
	pairs := [][2]string{
		{"Insight", insight},
		{"Trust", TrustBadge(s.TrustLevel)},
		{"Tone", s.Policy.ToneDescriptor},
		{"Approach", s.Policy.Approach},
		{"Max sentences", fmt.Sprintf("%d", s.Policy.MaxSentences)},
	}
	if s.Highlight != nil {
		pairs = append(pairs, [2]string{"Highlight", StylePurple.Render(s.Highlight.Text)})
	}
	b.WriteString(RenderKV(pairs))
	if len(s.Policy.ForbiddenPhrases) > 0 {
		b.WriteString("\n" + Header("Avoid") + "\n")
		b.WriteString(Dim(strings.Join(s.Policy.ForbiddenPhrases, ", ")) + "\n")
	}
	return RenderBox("Prompt signal", b.String())
}
