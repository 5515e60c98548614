// Package kanjigo provides an in-memory reference catalog of CJK ideographs.
//
// A catalog is built once from a kanjidic2 dictionary (plus optional KRADFILE
// decompositions), cached as a compact binary blob, and then queried many
// times with a small lookup language.
//
// # Quick Start
//
//	ctx := context.Background()
//	cat, err := kanjigo.Open(ctx,
//	    kanjigo.WithSource(ingest.Source{
//	        Kanjidic2: "kanjidic2.xml.gz",
//	        Kradfiles: []string{"kradfile", "kradfile2"},
//	    }),
//	    kanjigo.WithCache(cache.New(blobstore.NewLocalStore("./cache"))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cat.Close()
//
//	res, _ := cat.Query(ctx, "grade=1&jlpt=4")
//	for _, k := range res.Records {
//	    fmt.Println(k.Literal, k.StrokeCount)
//	}
//
// The first Open parses the dictionary and writes the cache; later runs
// decode the cache instead. A cache that is missing, outdated or corrupt is
// rebuilt transparently.
//
// # Query Language
//
// Input that is not made of keyed groups is read as literal characters and
// returns each known character once, in input order:
//
//	cat.Query(ctx, "日本語")
//
// Keyed input is a list of key/value groups. "," or whitespace unions the
// next group into the result, "&" or "+" intersects it:
//
//	ucs=4e9c            codepoint (hex)
//	jis208=1-16-01      legacy codes (jis208, jis212, jis213)
//	grade=1 jlpt=4      classification (decimal)
//	strokes<5           stroke count (strokes=, strokes<, strokes>)
//	radical=7           radical by ordinal or literal (radical=二)
//	component=口        characters containing a component
//
// # Storage
//
// Caches live in any blobstore.BlobStore: the local filesystem, memory, S3
// (optionally with a DynamoDB commit log), or MinIO.
//
// # Reloading
//
// Reload rebuilds the catalog from its source and swaps it in atomically.
// Queries running against the previous catalog complete unaffected. Watch
// triggers Reload when a source file changes.
package kanjigo
