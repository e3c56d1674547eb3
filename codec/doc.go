// Package codec provides the text conversion capability used by the console
// to read typed arguments and variable values from input tokens and to write
// them back out.
//
// A [Codec] handles one Go type. The [Registry] maps types to codecs and is
// consulted at bind time, so an unsupported parameter or variable type is
// reported when a binding is created rather than when it is invoked.
//
// # Built-in Codecs
//
// [NewRegistry] includes codecs for every integer, unsigned and
// floating-point kind, bool, string and [time.Duration]. Named types whose
// underlying kind is one of these are handled by converting through the
// underlying codec, and any type whose pointer implements
// [encoding.TextUnmarshaler] is parsed with UnmarshalText and formatted with
// MarshalText or String when available.
//
// # Custom Codecs
//
//	type Vec struct{ X, Y float64 }
//
//	codec.Register(reg, codec.Funcs[Vec]{
//		ParseFunc:  parseVec,  // "1.5,2"
//		FormatFunc: formatVec,
//	})
package codec
