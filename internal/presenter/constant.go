package presenter

import "intent-pipeline/internal/intent"

// Prefix templates
const (
	TemplateDirect    = "✅ %s completado exitosamente"
	TemplateLLM       = "🤖 Aquí tienes la respuesta:"
	TemplateTools     = "🔧 Herramientas ejecutadas:"
	TemplateParsing   = "❌ No pude entender completamente tu solicitud"
	TemplateExecution = "💥 Hubo un error ejecutando la acción"
	TemplateTool      = "🔧 Error en las herramientas"
)

// Presentation blocks
const (
	BlockFollowUp       = "\n🤔 **Preguntas de seguimiento:**"
	BlockSuggestions    = "\n💡 **Sugerencias:**"
	BlockLowConfidence  = "\n⚠️ *Si necesitas algo diferente, intenta ser más específico*"
	ErrorFormat         = "❌ **Error**: %s"
	ErrorSuggestions    = "\n\n💡 **Sugerencias:**"
	ContinuationFooter  = "\n\n🔄 *Continuando trabajo en: %s*"
	Bullet              = "• "
	MarkerParsingError  = "no pude entender"
	MarkerToolError     = "herramientas"
	MaxIntentHints      = 2
	MaxContextHints     = 2
	TitleMaxRunes       = 50
	TwoStepWindow       = 2
	SlowExecutionSecond = 10.0
)

// Confidence weights
const (
	WeightParse     = 0.4
	WeightSuccess   = 0.4
	WeightTime      = 0.2
	LevelHighScore  = 0.8
	LevelMediumMark = 0.6
)

// Context hints
const (
	HintTestsForCreated  = "Continuar con tests para lo creado"
	HintOptimizeImpact   = "Analizar impacto de optimizaciones"
	HintBackToAnalysis   = "Volver al análisis iniciado"
	HintContinueCreation = "Continuar con la creación"
)

var defaultErrorSuggestions = []string{
	"Intenta ser más específico",
	"Verifica que el comando sea válido",
	"Usa 'ayuda' para ver opciones disponibles",
}

var suggestionTable = map[intent.Intent]intentSuggestions{
	intent.IntentAnalyze: {
		followUp: []string{
			"¿Quieres que optimice los problemas encontrados?",
			"¿Te interesa un análisis más detallado de algún área?",
			"¿Debo generar un reporte con los hallazgos?",
		},
		proactive: []string{
			"Crear plan de optimización basado en el análisis",
			"Generar tests para las áreas problemáticas",
			"Documentar mejores prácticas encontradas",
		},
	},
	intent.IntentCreate: {
		followUp: []string{
			"¿Quieres que agregue tests para esto?",
			"¿Debo integrarlo con el resto del proyecto?",
			"¿Te ayudo a documentar lo que creé?",
		},
		proactive: []string{
			"Analizar lo creado para verificar calidad",
			"Generar documentación automática",
			"Crear tests unitarios correspondientes",
		},
	},
	intent.IntentOptimize: {
		followUp: []string{
			"¿Quieres que analice el impacto de las optimizaciones?",
			"¿Debo hacer más optimizaciones en otras áreas?",
			"¿Te interesa ver métricas de mejora?",
		},
		proactive: []string{
			"Medir performance antes/después",
			"Buscar otras oportunidades de optimización",
			"Documentar cambios realizados",
		},
	},
	intent.IntentFind: {
		followUp: []string{
			"¿Quieres que analice lo que encontré?",
			"¿Necesitas buscar algo relacionado?",
			"¿Te ayudo a entender lo que encontré?",
		},
		proactive: []string{
			"Analizar contexto de lo encontrado",
			"Buscar patrones similares",
			"Explicar funcionalidad encontrada",
		},
	},
	intent.IntentExplain: {
		followUp: []string{
			"¿Necesitas más detalles sobre algún aspecto?",
			"¿Quieres ejemplos prácticos?",
			"¿Te ayudo con implementación?",
		},
		proactive: []string{
			"Crear ejemplos de código",
			"Generar documentación relacionada",
			"Buscar mejores prácticas",
		},
	},
}

type taskIntent struct {
	task intent.Intent
	next intent.Intent
}

type continuation struct {
	format   string
	fallback string
}

// taskContinuations is keyed by (current task, new intent). The format takes the current target.
var taskContinuations = map[taskIntent]continuation{
	{intent.IntentAnalyze, intent.IntentCreate}:   {"Crear solución para %s", "el problema"},
	{intent.IntentAnalyze, intent.IntentOptimize}: {"Optimizar %s", "lo analizado"},
	{intent.IntentCreate, intent.IntentAnalyze}:   {"Analizar calidad de %s", "lo creado"},
	{intent.IntentCreate, intent.IntentTest}:      {"Crear tests para %s", "lo desarrollado"},
	{intent.IntentOptimize, intent.IntentAnalyze}: {"Verificar mejoras en %s", "lo optimizado"},
}
