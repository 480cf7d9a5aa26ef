package logging

// Component constants for structured logging, attached under the
// "component" key.
const (
	ComponentCLI        = "cli"
	ComponentSettings   = "settings"
	ComponentPipeline   = "pipeline"
	ComponentEdges      = "edges"
	ComponentResample   = "resample"
	ComponentClassify   = "classify"
	ComponentMatrix     = "matrix"
	ComponentPreview    = "preview"
	ComponentDiagnostic = "diagnostic"
)
