package main

import "github.com/stormpy/stormext/cmd/stormbuild/internal"

func main() {
	internal.Execute()
}
