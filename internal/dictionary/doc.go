// Package dictionary finds word-list entries that complete a partially
// recovered word.
//
// The Matcher takes the trailing token of a rendered guess (the text after
// the last space, with placeholders removed) and scans a word list line by
// line for the first entry whose lowercase form starts with the lowercase
// token. The scan is forward-only and stops at the first hit, so lists of
// any size are supported without loading them into memory. Every call
// reopens the source and scans from the top; nothing is cached.
//
// Word lists come from a Source. FileSource reads a file on disk and is
// checked for existence when it is created, so a missing list fails at
// startup rather than on the first lookup. EmbeddedSource serves the
// built-in English list used when no file is configured.
package dictionary
