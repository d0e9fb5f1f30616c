// Package gen synthesizes TypeScript declaration modules from content-type
// descriptors.
//
// # Architecture
//
// The pipeline flows one way:
//
//	load.ContentType descriptors
//	        ↓
//	   Builder.AppendType (naming + field renderer + import resolver)
//	        ↓
//	   Graph (ordered registry of Modules)
//	        ↓
//	   Builder.RebuildIndex (index module, rebuilt from scratch)
//	        ↓
//	   Writer (one file per module) or Builder.Merge (one merged module)
//
// # Key Types
//
//   - Graph: insertion-ordered registry of modules
//   - Module: imports plus declarations of one generated file
//   - Declaration: closed set of Interface, TypeAlias, Statement and ReExport
//   - FieldRenderer: maps a field to a type expression and its imports
//   - Config: configuration built with functional options
//
// # Generated Output
//
//	{target}/
//	├── {Entity}.ts        // fields interface, type-id constant, entry alias
//	├── index.ts           // re-exports and the CMSEntries unions
//	├── ContentTypes.ts    // merged module, when requested
//	└── typeids.go         // Go companion, when a Go package is configured
//
// # Usage
//
//	cfg, err := gen.NewConfig(gen.WithTarget("./types"))
//	if err != nil {
//	    return err
//	}
//	b := gen.NewBuilder(cfg)
//	g := gen.NewGraph()
//	for _, ct := range export.ContentTypes {
//	    if err := b.AppendType(g, ct); err != nil {
//	        return err
//	    }
//	}
//	return gen.NewWriter(b).WriteAll(ctx, g)
//
// # Error Handling
//
//   - InvalidDescriptorError: descriptor is not a content type
//   - UnsupportedDeclarationKindError: merge met a declaration it cannot flatten
//   - DuplicateDeclarationError: two declarations share a name
//   - WriteError: a module could not be written; joined after all writes settle
//   - ConfigError: invalid option
package gen
