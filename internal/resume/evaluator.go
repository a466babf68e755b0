package resume

import (
	"fmt"
	"strings"
)

// ScoreThreshold is the fit score (out of 10) the candidate must exceed
// before the assistant drafts a cover letter. At exactly the threshold
// no letter is written.
const ScoreThreshold = 7.5

// BuildEvaluationPrompt assembles the job-fit evaluation request handed
// to the AI platform. No scoring happens locally; the prompt carries
// the resume, the job description and the instructions, and the
// platform's model does the rest.
func BuildEvaluationPrompt(resumeText, jobDescription, companyName string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert career advisor. Evaluate how well the candidate below fits the given job.\n\n")

	sb.WriteString("## Candidate resume\n\n")
	sb.WriteString(strings.TrimSpace(resumeText))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "## Job description (%s)\n\n", companyName)
	sb.WriteString(strings.TrimSpace(jobDescription))
	sb.WriteString("\n\n")

	sb.WriteString("## Instructions\n\n")
	sb.WriteString("1. Score the candidate's fit for this role from 0 to 10, considering skills, experience and seniority.\n")
	sb.WriteString("2. List the strongest matches and the most important gaps.\n")
	fmt.Fprintf(&sb, "3. If the score is greater than %.1f, write a tailored cover letter addressed to %s using concrete details from the resume.\n", ScoreThreshold, companyName)
	fmt.Fprintf(&sb, "4. If the score is %.1f or less, do not write a cover letter; instead explain what the candidate should improve or highlight to become competitive.\n", ScoreThreshold)

	return sb.String()
}
