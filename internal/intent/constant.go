package intent

import "regexp"

// Log prefixes
const (
	LogPrefixClassify = "internal.intent.Classify"
)

// Scoring
const (
	DefaultConfidenceThreshold = 0.4
	PatternWeight              = 0.8
	KeywordWeight              = 0.5
	MaxSuggestions             = 3
)

// Detail keys
const (
	DetailFocus  = "focus"
	DetailType   = "type"
	DetailTarget = "target"
)

// Refinement hints returned when the classifier is not confident.
const (
	HintBeMoreSpecific = "Intenta ser más específico sobre lo que quieres hacer"
	HintMentionFile    = "Menciona el archivo o proyecto específico"
	HintUseKeywords    = "Usa palabras clave como 'analizar', 'crear', 'buscar', etc."
	HintFileLocation   = "Especifica el nombre del archivo o su ubicación"
	HintExamplePhrase  = "Prueba: 'Analiza este proyecto y encuentra problemas'"
)

var staticHints = []string{HintBeMoreSpecific, HintMentionFile, HintUseKeywords}

var failureWords = []string{"problema", "error", "falla"}

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// patternGroups is evaluated in order; on equal scores the earlier group wins.
var patternGroups = []patternGroup{
	{
		intent:     IntentAnalyze,
		confidence: 0.9,
		patterns: mustAll(
			`analiz[ae].*?(?:proyecto|código|archivo|este|esto)`,
			`revisa.*?(?:código|proyecto|archivo)`,
			`qué.*?(?:problemas|issues|errores)`,
			`dame.*?(?:análisis|reporte|resumen)`,
			`examina.*?(?:este|esto|el|la)`,
		),
		keywords: []string{"analizar", "revisar", "problemas", "análisis", "examinar", "evaluar"},
	},
	{
		intent:     IntentCreate,
		confidence: 0.85,
		patterns: mustAll(
			`crea.*?(?:archivo|proyecto|función|clase)`,
			`genera.*?(?:código|archivo|proyecto)`,
			`hacer.*?(?:nuevo|nueva|un|una)`,
			`construye.*?(?:proyecto|aplicación|api)`,
			`implementa.*?(?:función|clase|método)`,
		),
		keywords: []string{"crear", "generar", "nuevo", "nueva", "construir", "implementar", "hacer"},
	},
	{
		intent:     IntentFind,
		confidence: 0.8,
		patterns: mustAll(
			`busca.*?(?:archivo|función|clase|patrón)`,
			`encuentra.*?(?:donde|dónde|el|la)`,
			`(?:donde|dónde).*?(?:está|se encuentra)`,
			`localiza.*?(?:archivo|función|código)`,
		),
		keywords: []string{"buscar", "encontrar", "donde", "dónde", "localizar", "ubicar"},
	},
	{
		intent:     IntentOptimize,
		confidence: 0.8,
		patterns: mustAll(
			`optimiza.*?(?:código|performance|rendimiento)`,
			`mejora.*?(?:velocidad|performance|eficiencia)`,
			`acelera.*?(?:esto|función|código)`,
			`reduce.*?(?:tiempo|latencia|memoria)`,
		),
		keywords: []string{"optimizar", "mejorar", "acelerar", "performance", "rendimiento", "eficiencia"},
	},
	{
		intent:     IntentExplain,
		confidence: 0.75,
		patterns: mustAll(
			`explica.*?(?:como|cómo|qué|este|esto)`,
			`(?:como|cómo).*?(?:funciona|trabaja|opera)`,
			`qué.*?(?:hace|significa|es)`,
			`describe.*?(?:el|la|este|esto)`,
		),
		keywords: []string{"explicar", "como", "cómo", "qué", "describe", "significa"},
	},
	{
		intent:     IntentStatus,
		confidence: 0.9,
		patterns: mustAll(
			`(?:estado|status|situación).*?(?:actual|del|de)`,
			`como.*?(?:está|van|va).*?(?:proyecto|desarrollo)`,
			`progreso.*?(?:actual|del|de)`,
			`métricas.*?(?:sistema|proyecto)`,
		),
		keywords: []string{"estado", "status", "progreso", "métricas", "situación"},
	},
	{
		intent:     IntentHelp,
		confidence: 0.8,
		patterns: mustAll(
			`ayuda.*?(?:con|a|para)`,
			`(?:como|cómo).*?(?:puedo|debo|hago)`,
			`no.*?(?:sé|entiendo|comprendo)`,
			`qué.*?(?:comandos|opciones|puedo)`,
		),
		keywords: []string{"ayuda", "como", "cómo", "puedo", "debo", "comandos", "opciones"},
	},
}

// targetPatterns are tried in order; the first capture wins.
var targetPatterns = mustAll(
	`(?:archivo|file|fichero)\s+(\S+)`,
	`(?:proyecto|project)\s+(\S+)`,
	`(?:función|function|método|method)\s+(\S+)`,
	`(?:clase|class)\s+(\S+)`,
	`(?:este|esto|el|la)\s+(\S+)`,
	`(\S+\.py)`,
	`(\S+\.js)`,
	`(\S+\.json)`,
	`(\S+/\S*)`,
)

type detailRule struct {
	value    string
	keywords []string
}

var analyzeFocus = []detailRule{
	{value: "issues", keywords: []string{"problemas", "errores", "issues"}},
	{value: "performance", keywords: []string{"performance", "rendimiento"}},
	{value: "metrics", keywords: []string{"métricas", "estadísticas"}},
}

var createType = []detailRule{
	{value: "api", keywords: []string{"api", "servidor"}},
	{value: "web", keywords: []string{"web", "frontend"}},
	{value: "function", keywords: []string{"función", "método"}},
	{value: "class", keywords: []string{"clase"}},
}

var optimizeAxis = []detailRule{
	{value: "memory", keywords: []string{"memoria"}},
	{value: "speed", keywords: []string{"velocidad", "tiempo"}},
	{value: "cpu", keywords: []string{"cpu"}},
}
