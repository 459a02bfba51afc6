// Package renderfail defines the structured failure classification shared by
// the render pipeline. Every failure a render invocation can produce carries
// an explicit Kind, which determines both retry eligibility inside the
// transport and the process exit code chosen at the CLI boundary. Callers
// never inspect message text to make control-flow decisions.
package renderfail
