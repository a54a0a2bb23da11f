package main

import "github.com/shwikky/storefront/cmd"

func main() {
	cmd.Execute()
}
