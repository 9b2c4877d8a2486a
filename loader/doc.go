// Package loader assembles a resolved configuration from layers: files and
// glob patterns in increasing order of precedence, then optionally the
// environment as the lowest layer. It picks a parser by file extension,
// follows include directives through FileIncluder, reloads on file changes
// with Watch, and exposes the result to Fx through NewModule.
package loader
