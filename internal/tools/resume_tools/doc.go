// Package resume_tools provides the resume and job application
// assistant tools, backed by the owner's PDF resume, plus the web page
// fetcher the assistant uses to read job postings.
package resume_tools
