// Package uniuri generates random identifiers from crypto/rand.
//
// The alphabet is lower case only, so identifiers stay unique when used as
// file names on case insensitive file systems. FileName builds the stored
// name of an upload from such an identifier and the original extension.
package uniuri
