// Package jsvalue models chart configuration as a closed set of value kinds
// and serializes it into JavaScript literals that can be inlined in HTML.
//
// # Value Model
//
// Configuration reaches this package in two shapes:
//
//	Map / []any / Go scalars   - caller input (From normalizes it)
//	Value                      - tagged tree: Null, Bool, Int, Uint, Float,
//	                             String, Array, Object, Code
//
// Map is an ordered list of key/value pairs so that the serialized key order
// is the order the caller wrote. Plain Go maps are accepted too; their keys
// are sorted since Go maps carry no order.
//
// # Code Fragments
//
// Code holds script text that is written verbatim: never quoted, never
// escaped. It is the only way executable behavior enters a serialized
// literal and callers vouch for its syntax.
//
// # Escaping
//
// Serialize escapes <, >, &, quotes and the JavaScript line terminators
// U+2028/U+2029 inside every string, so a literal can never close the
// surrounding <script> element. Output is otherwise plain JSON.
package jsvalue
