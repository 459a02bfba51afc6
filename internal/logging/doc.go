// Package logging builds the slog logger used across the render pipeline.
// The console handler emits timestamped key=value lines suited to a
// terminal; the json handler emits one object per line for machine
// consumption. All diagnostic output goes to stderr so stdout stays
// reserved for the render result.
package logging
