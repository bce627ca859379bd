package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumen/internal/trust"
)

// FormatTrust renders a user's trust level and the tone policy it unlocks.
func FormatTrust(info trust.Info) string {
	next := "maximum level reached"
	if !info.IsMaxLevel {
		next = fmt.Sprintf("%d message(s)", info.MessagesToNextLevel)
	}

	var b strings.Builder
	b.WriteString(RenderKV([][2]string{
		{"Level", TrustBadge(info.Level)},
		{"Interactions", fmt.Sprintf("%d", info.InteractionCount)},
		{"Next level in", next},
		{"Tone", info.Policy.ToneDescriptor},
		{"Max sentences", fmt.Sprintf("%d", info.Policy.MaxSentences)},
	}))
	if info.Description != "" {
		b.WriteString("\n" + Dim(info.Description) + "\n")
	}
	if len(info.Policy.AllowedExpressions) > 0 {
		b.WriteString("\n" + Header("Allowed expressions") + "\n")
		b.WriteString(Bullets(info.Policy.AllowedExpressions))
	}
	return RenderBox("Trust", b.String())
}

// FormatTransition reports one registered interaction.
func FormatTransition(t trust.Transition) string {
	if t.LevelChanged {
		return fmt.Sprintf("Interaction #%d registered. %s %s → %s\n",
			t.InteractionCount, StylePurple.Render("Level up!"), TrustBadge(t.OldLevel), TrustBadge(t.NewLevel))
	}
	return fmt.Sprintf("Interaction #%d registered (%s)\n", t.InteractionCount, TrustBadge(t.NewLevel))
}
