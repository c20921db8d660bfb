// Package processor runs one code-generation pass over parsed struct and enum
// declarations.
//
// For each declaration, processing validates the type's annotations with the
// type-level schema and the annotations of every field and variant with the
// field-level schema, failing on the first bad annotation. It then extracts the
// facts the generator needs (wire names, defaults, proxies, skipped members)
// and synthesizes one impl header per configured contract:
//
//    impl<'a, T: Clone + nanoserde::SerJson, > nanoserde::SerJson for Pair<'a, T, >
//
// The entry point is processor.Config. Its Process method handles a single
// declaration and returns a Result. Its Execute method processes a batch of
// declarations and writes each rendered Result through the configured
// OutputFactory.
//
// Declarations are usually loaded from TOML files with LoadDeclarations. A
// declaration file has the following shape:
//
//    [[struct]]
//    name = "Pair"
//    generics = "<'a, T: Clone>"
//    attributes = ['#[nserde(rename = "pair")]']
//
//      [[struct.field]]
//      name = "left"
//      type = "&'a T"
//      attributes = ['#[nserde(default)]']
//
//    [[enum]]
//    name = "Shape"
//
//      [[enum.variant]]
//      name = "Circle"
//
//        [[enum.variant.field]]
//        type = "f32"
//
// Attribute and generics text is parsed with the parser package.
//
// The set of contracts to implement can be configured explicitly. By default,
// all contracts registered via RegisterContract are used; the nanoserde
// contracts are registered by this package.
package processor
