// Package workflow drives the end-to-end design system generation pipeline:
// brand and trend research, design token generation, theme variations and a
// quality evaluation pass, each phase delegated to a specialist agent. The
// pipeline writes its intermediate artifacts as JSON files when an output
// directory is configured.
package workflow
