// Package forms embeds the bundled form documents.
package forms

import "embed"

// JobApplication is the name of the job application document inside FS.
const JobApplication = "job_application.yaml"

// JobApplicationOperation is the operation id the job application form is
// built from.
const JobApplicationOperation = "submitApplication"

//go:embed *.yaml
var FS embed.FS
