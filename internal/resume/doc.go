// Package resume reads the owner's resume PDF and builds the
// job-application evaluation prompt.
//
// Text extraction is the only local processing; scoring and cover
// letter writing are delegated to the AI platform via the prompt from
// BuildEvaluationPrompt.
package resume
