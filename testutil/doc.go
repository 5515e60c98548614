// Package testutil provides fixture catalogs for tests.
//
// This package is intended for use in tests and benchmarks only.
//
// # Fixed fixtures
//
//	s := testutil.NewStore(t)             // thirteen hand-picked records
//	xml := testutil.Kanjidic2XML          // the same characters as kanjidic2
//	krad := testutil.KradfileUTF8         // their component decompositions
//
// # Random catalogs
//
//	rng := testutil.NewRNG(seed)
//	entries := rng.Entries(500)
package testutil
