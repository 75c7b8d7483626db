//go:build tinygo && baremetal

package main

import (
	"icedeck/app"
	"icedeck/hal"
)

func main() {
	app.Run(hal.New())
}
