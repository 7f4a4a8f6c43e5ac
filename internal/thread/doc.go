// Package thread renders comment trees for the terminal.
//
// Each root is printed as a header line ("author (time)") followed by its
// markdown body. Replies hang off box-drawing connectors:
//
//	alice (2 hours ago)
//	Root comment
//
//	├── bob (1 hour ago)
//	│   First reply
//	└── carol (1 hour ago)
//	    Second reply
//
// A run of replies that alternates between authors for at least three turns
// is printed as one flat transcript under the first comment instead of a
// staircase of nested replies. Sibling replies that all come from the same
// author count as a single turn of that transcript.
package thread
