// Package cli renders the output of the command-line exerciser.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer] and apply
//     the active [ui] theme.
//     Examples: [DisplayWrite], [DisplayRead], [DisplayContention].
//
//   - Format* functions return a plain string without performing I/O. They
//     are pure and produce exactly the lines of the original C client.
//     Examples: [FormatWrite], [FormatRead], [FormatExecutionDuration].
package cli
