// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// content from files with specific extensions.
//
// Normalisers are registered with the Registry at startup.
package normalisers
