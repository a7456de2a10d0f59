package llmprovider

import "time"

const (
	DefaultRetryDelay    = time.Second
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// Task type names carried by Request.TaskType.
const (
	TaskComplex = "complex"
	TaskCoding  = "coding"
	TaskGeneral = "general"
)
