package trust

// Policy is the static tone policy for one level.
type Policy struct {
	Label              string
	Description        string
	MaxSentences       int
	ToneDescriptor     string
	Approach           string
	AllowedExpressions []string
	ForbiddenPhrases   []string
}

type levelPolicy struct {
	Label        string
	Description  string
	MaxSentences int
	Tone         string
	Approach     string
	Expressions  []string
}

var policies = [...]levelPolicy{
	Level1: {
		Label:        "Conociendo",
		Description:  "Primeras interacciones, estableciendo contacto",
		MaxSentences: 1,
		Tone:         "reservado, educado, sin asumir",
		Approach:     "preguntas básicas y validación simple",
		Expressions:  []string{"cuéntame más", "¿cómo fue tu día?", "entiendo", "¿qué pasó?", "¿y eso cómo te hizo sentir?"},
	},
	Level2: {
		Label:        "Estableciendo",
		Description:  "Empezando a conocerse, recordando detalles",
		MaxSentences: 2,
		Tone:         "cercano, atento, menos formal",
		Approach:     "conexiones simples con conversaciones pasadas",
		Expressions:  []string{"ayer mencionaste X. ¿sigue ahí?", "¿esto pasa seguido?", "tiene sentido", "¿desde cuándo?", "noto que..."},
	},
	Level3: {
		Label:        "Construyendo",
		Description:  "Relación establecida, confianza mutua",
		MaxSentences: 2,
		Tone:         "confidente, observador, sugerente",
		Approach:     "identifica patrones y sugiere conexiones",
		Expressions:  []string{"veo que cuando X, sueles Y", "esto me recuerda a lo de la semana pasada", "¿qué crees que lo causa?", "he notado un patrón", "como la vez que..."},
	},
	Level4: {
		Label:        "Consolidado",
		Description:  "Amigo cercano que conoce bien al usuario",
		MaxSentences: 2,
		Tone:         "amigo cercano, humor apropiado, honesto",
		Approach:     "lee entre líneas y desafía constructivamente",
		Expressions:  []string{"sé que esto te afecta especialmente", "¿y si probamos lo que funcionó antes?", "conociéndote, creo que...", "esto no es típico en ti", "¿qué haría el tú del mes pasado?"},
	},
	Level5: {
		Label:        "Íntimo",
		Description:  "Profundo entendimiento mutuo",
		MaxSentences: 3,
		Tone:         "directo, auténtico, intuitivo",
		Approach:     "anticipa necesidades con honestidad profunda",
		Expressions:  []string{"esto no es como tú. ¿qué pasa realmente?", "ya sabes qué hacer, ¿verdad?", "seamos honestos", "te estás evadiendo", "¿a quién estás engañando?"},
	},
}

// forbiddenPhrases never appear in generated replies, at any level.
var forbiddenPhrases = []string{
	"estoy aquí para ti",
	"recuerda que puedes confiar en mí",
	"siempre que me necesites",
	"tu bienestar es importante",
	"soy tu espacio seguro",
	"no estás solo",
	"no estás sola",
	"estaré aquí siempre",
	"puedes contar conmigo siempre",
	"mi propósito es ayudarte",
	"estoy para apoyarte",
	"esto es un espacio seguro",
	"tu salud mental importa",
	"quiero que sepas que",
	"es importante que recuerdes",
}

// PolicyFor returns the policy of level l. Allowed expressions accumulate
// from Level1 up to l. Unknown levels get the Level1 policy.
func PolicyFor(l Level) Policy {
	if !l.Valid() {
		l = Level1
	}
	p := policies[l]
	var allowed []string
	for lv := Level1; lv <= l; lv++ {
		allowed = append(allowed, policies[lv].Expressions...)
	}
	return Policy{
		Label:              p.Label,
		Description:        p.Description,
		MaxSentences:       p.MaxSentences,
		ToneDescriptor:     p.Tone,
		Approach:           p.Approach,
		AllowedExpressions: allowed,
		ForbiddenPhrases:   append([]string(nil), forbiddenPhrases...),
	}
}
