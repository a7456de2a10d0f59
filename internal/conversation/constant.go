package conversation

import "intent-pipeline/internal/intent"

// Log prefixes
const (
	LogPrefixStart = "internal.conversation.Start"
	LogPrefixSave  = "internal.conversation.Save"
	LogPrefixLoad  = "internal.conversation.Load"
)

const (
	DefaultMaxTurns        = 10
	MaxRecentActions       = 5
	SnapshotWindow         = 3
	MaxContinuations       = 2
	SessionIDPrefix        = "conv_"
	ActionGeneral          = "general"
	PreferenceIntentPrefix = "intent_"
	PreferenceTargetPrefix = "target_"
	PreferenceDetailPrefix = "pref_"
)

// taskIntents update the current task when recorded.
var taskIntents = map[intent.Intent]bool{
	intent.IntentAnalyze:  true,
	intent.IntentCreate:   true,
	intent.IntentOptimize: true,
}

// relatedTasks lists the intents that continue a given current task.
var relatedTasks = map[intent.Intent][]intent.Intent{
	intent.IntentAnalyze:  {intent.IntentOptimize, intent.IntentExplain},
	intent.IntentCreate:   {intent.IntentAnalyze, intent.IntentTest},
	intent.IntentOptimize: {intent.IntentAnalyze, intent.IntentTest},
}

// continuations are keyed by the intent of the most recent turn.
var continuations = map[intent.Intent][]string{
	intent.IntentAnalyze: {
		"¿Quieres que optimice los problemas encontrados?",
		"¿Te interesa ver métricas específicas?",
		"¿Debo crear un reporte detallado?",
	},
	intent.IntentCreate: {
		"¿Quieres que analice lo que creé?",
		"¿Debo generar tests para esto?",
		"¿Te ayudo a integrarlo con el proyecto?",
	},
	intent.IntentOptimize: {
		"¿Quieres que analice el resultado?",
		"¿Debo hacer más optimizaciones?",
		"¿Te interesa ver las métricas de mejora?",
	},
}
