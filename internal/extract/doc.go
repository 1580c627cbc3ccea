// Package extract turns the fields of a conforming filename into a labeled
// information tree using the content tables and vocabulary of a standard.
//
// Fields with a content table are looked up directly or, failing that, as
// a combined category of three codes. Vocabulary-only fields are copied
// verbatim or passed through one of two decoders: [DecodeTitle] for free
// text and [DecodeIDs] for object references.
package extract
