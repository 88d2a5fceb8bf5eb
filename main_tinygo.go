//go:build tinygo

package main

import (
	"brass/app"
	"brass/hal"
)

func main() {
	app.Run(hal.New())
}
