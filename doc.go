// Package arrowconvert converts between strongly-typed Go values and Apache
// Arrow columnar arrays without an intermediate row-oriented representation.
//
// The core lives in pkg/arrowconv: a Codec[T] fixes the physical Arrow
// column type for a logical Go type T and knows how to append values into a
// mutable builder and read them back out of a finished array. Combinators
// compose codecs over optionals, slices, structs and tagged unions, so an
// arbitrarily nested value tree maps onto a matching tree of Arrow columns
// with validity bitmaps, offset buffers and typed value buffers.
//
// # Quick start
//
//	type Event struct {
//		Name  *string
//		Count int64
//	}
//
//	var eventCodec = arrowconv.Struct[Event](
//		arrowconv.NewField("name", arrowconv.Option(arrowconv.String),
//			func(e *Event) *string { return e.Name },
//			func(e *Event, v *string) { e.Name = v }),
//		arrowconv.NewField("count", arrowconv.Int64,
//			func(e *Event) int64 { return e.Count },
//			func(e *Event, v int64) { e.Count = v }),
//	)
//
//	arr, err := arrowconv.Serialize(eventCodec, events)
//	...
//	back, err := arrowconv.Deserialize(eventCodec, arr)
//
// Field accessor plumbing is mechanical and intended to be emitted by a code
// generator; the codec contract is the stable surface that generated code
// targets.
//
// # Overrides
//
// A logical type has exactly one canonical physical mapping. Alternate
// physical representations are chosen explicitly at the use site: LargeString
// and LargeBinary switch to 64-bit offsets, FixedSizeBinary and FixedSizeList
// to fixed widths, Decimal128 carries an explicit precision and scale, and
// JSON stores any value as an opaque document. Using an override at one
// struct field never changes the mapping of the same logical type elsewhere.
package arrowconvert
