package analysis

// Effect is the direction an event category moves mood.
type Effect string

const (
	EffectImproves Effect = "improves"
	EffectWorsens  Effect = "worsens"
	EffectMixed    Effect = "mixed"
	EffectNeutral  Effect = "neutral"
)

// EventCategory is one row of the causal event table.
type EventCategory struct {
	Name     string
	Keywords []string
	Typical  Effect
}

// DefaultEventCategories feeds causal inference.
var DefaultEventCategories = []EventCategory{
	{Name: "trabajo", Keywords: []string{"trabajo", "jefe", "proyecto"}, Typical: EffectWorsens},
	{Name: "ejercicio", Keywords: []string{"ejercicio", "gym", "correr"}, Typical: EffectImproves},
	{Name: "sueño", Keywords: []string{"dormir", "sueño", "descanso"}, Typical: EffectImproves},
	{Name: "relación", Keywords: []string{"pareja", "pelea", "discusión"}, Typical: EffectMixed},
	{Name: "socialización", Keywords: []string{"amigos", "salir", "reunión"}, Typical: EffectImproves},
}

// DefaultTriggerKeywords feeds emotional trigger detection on low-mood notes.
var DefaultTriggerKeywords = map[string][]string{
	"trabajo":    {"trabajo", "jefe", "proyecto", "reunión", "laboral"},
	"relaciones": {"pareja", "familia", "amigo", "pelea", "discusión"},
	"salud":      {"cansado", "enfermo", "dolor", "medicamento"},
	"estrés":     {"estrés", "presión", "ansiedad", "agobio", "desbordado"},
	"soledad":    {"solo", "soledad", "aislado", "nadie"},
}

var weekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

func eventKeywordTable(categories []EventCategory) map[string][]string {
	out := make(map[string][]string, len(categories))
	for _, c := range categories {
		out[c.Name] = c.Keywords
	}
	return out
}
