package intent

import "github.com/eaburns/pretty"

// DebugString renders g with the reflective pretty-printer, for the
// -dump-intentions driver flag and for test failure messages.
func DebugString(g *Graph) string { return pretty.String(g) }
