// Package mviewgen expands mview! { ... } view markup into builder call
// chains for the view runtime.
//
// The pipeline consists of:
//   - [Lexer]: tokenizes an invocation body and groups delimiters into trees
//   - [Parser]: builds [Children] from the token trees with a [Cursor]
//   - [Generator]: lowers elements and components into a [Chain]
//   - [Analyzer]: reports likely mistakes as warnings
//
// [Expand] handles a single invocation. [GenerateFile] rewrites a whole
// .mview file, adds the runtime imports and records a [SourceMap].
package mviewgen
