package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvaluationPrompt(t *testing.T) {
	prompt := BuildEvaluationPrompt(
		"Jane Doe\nGo engineer, five years of backend work",
		"We need a senior Go developer for our payments team",
		"Acme Corp",
	)

	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "senior Go developer")
	assert.Contains(t, prompt, "Acme Corp")
	assert.Contains(t, prompt, "7.5")
	assert.Contains(t, prompt, "cover letter")
}

func TestBuildEvaluationPrompt_ThresholdBothWays(t *testing.T) {
	prompt := BuildEvaluationPrompt("resume", "jd", "Acme")

	// Both branches of the threshold are spelled out for the model. A
	// score of exactly 7.5 gets no cover letter.
	assert.Contains(t, prompt, "greater than 7.5")
	assert.Contains(t, prompt, "7.5 or less")
	assert.NotContains(t, prompt, "7.5 or higher")
}
