// Package posy reads Python package metadata: the METADATA, PKG-INFO
// and WHEEL files that carry core metadata as a header section plus an
// optional body.
//
// The format looks like an RFC822 email message but is not one; the
// real grammar is what Python's email module historically accepted,
// with materially different continuation-line rules. The parser here
// is strict: an input either parses completely or is rejected with a
// position and an expected construct, never partially.
//
// Layout:
//
//   - pkg/metadata: the header parser, the generic field/document model,
//     and the core-metadata view that folds the body into Description.
//   - pkg/dist: batch scanning and watching of metadata files on disk.
//   - pkg/platform: the ordered compatibility-tag contract consumed by
//     resolution code; the host detectors live outside this module.
//
// Usage:
//
//	doc, err := posy.Parse(raw)
//	if err != nil {
//		// the file is broken; there is no partial result
//	}
//	core := posy.NewCoreMetadata(doc)
//	name, _ := core.Fields.First("Name")
package posy
