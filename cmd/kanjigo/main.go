// Command kanjigo builds, caches and queries kanji catalogs.
package main

func main() {
	Execute()
}
